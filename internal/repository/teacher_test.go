package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "firstname", "lastname"}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *TeacherRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewTeacherRepository(mock)
}

func TestTeacherRepository_ListByLastname_All(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), "Eleni", "Bakirtzi").
			AddRow(int64(2), "Nikos", "Alexiou"))

	got, err := repo.ListByLastname(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []teacher.Teacher{
		{ID: 1, Firstname: "Eleni", Lastname: "Bakirtzi"},
		{ID: 2, Firstname: "Nikos", Lastname: "Alexiou"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepository_ListByLastname_PrefixFilter(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lastname ILIKE $1")).
		WithArgs(`pap\_%`).
		WillReturnRows(pgxmock.NewRows(columns))

	got, err := repo.ListByLastname(context.Background(), "pap_")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepository_ListByLastname_QueryError(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("FROM teachers").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByLastname(context.Background(), "")
	assert.ErrorContains(t, err, "connection reset")
}

func TestTeacherRepository_GetByID(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "Maria", "Papadopoulou"))

	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &teacher.Teacher{ID: 7, Firstname: "Maria", Lastname: "Papadopoulou"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Contains(t, err.Error(), "teacher id=")
}

func TestTeacherRepository_Create(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO teachers (firstname, lastname) VALUES ($1, $2)")).
		WithArgs("Maria", "Papadopoulou").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(12), "Maria", "Papadopoulou"))

	got, err := repo.Create(context.Background(), "Maria", "Papadopoulou")
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepository_Update(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE teachers SET firstname = $2, lastname = $3 WHERE id = $1")).
		WithArgs(int64(3), "Anna", "Georgiou").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(3), "Anna", "Georgiou"))

	got, err := repo.Update(context.Background(), teacher.Teacher{ID: 3, Firstname: "Anna", Lastname: "Georgiou"})
	require.NoError(t, err)
	assert.Equal(t, "Georgiou", got.Lastname)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepository_Update_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("UPDATE teachers").
		WithArgs(int64(3), "Anna", "Georgiou").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), teacher.Teacher{ID: 3, Firstname: "Anna", Lastname: "Georgiou"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestTeacherRepository_Delete(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
