package email

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TeacherChange describes a write to the teachers registry.
type TeacherChange struct {
	Event      string
	TeacherID  int64
	Firstname  string
	Lastname   string
	OccurredAt time.Time
}

// SendTeacherChangedEmail tells the registry recipient that a teacher
// record was created, updated or deleted.
func (c *Client) SendTeacherChangedEmail(to string, change TeacherChange) error {
	data := map[string]string{
		"Event":      change.Event,
		"TeacherID":  strconv.FormatInt(change.TeacherID, 10),
		"Firstname":  change.Firstname,
		"Lastname":   change.Lastname,
		"OccurredAt": change.OccurredAt.UTC().Format(time.RFC1123),
	}

	return c.SendEmail(to, teacherChangedSubject(change), TemplateTeacherChanged, data)
}

// teacherChangedSubject reads "Teacher Updated: #42".
func teacherChangedSubject(change TeacherChange) string {
	return fmt.Sprintf("Teacher %s: #%d", cases.Title(language.English).String(change.Event), change.TeacherID)
}
