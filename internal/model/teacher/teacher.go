// Package teacher holds the Teacher entity and the transfer objects the
// teachers resource exchanges with clients.
package teacher

// Teacher is a persisted teacher record. ID is assigned by the database.
type Teacher struct {
	ID        int64  `db:"id"`
	Firstname string `db:"firstname"`
	Lastname  string `db:"lastname"`
}
