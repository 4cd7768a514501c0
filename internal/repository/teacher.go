package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/jackc/pgx/v5"
)

const teacherColumns = `id, firstname, lastname`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type TeacherRepository struct {
	db DBTX
}

func NewTeacherRepository(db DBTX) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// ListByLastname returns every teacher when lastname is empty, ordered by id.
// Otherwise it returns teachers whose lastname starts with the filter,
// ignoring case, ordered by lastname, firstname and id.
func (r *TeacherRepository) ListByLastname(ctx context.Context, lastname string) ([]teacher.Teacher, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if lastname == "" {
		rows, err = r.db.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY id`)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+teacherColumns+` FROM teachers
			WHERE lastname ILIKE $1
			ORDER BY lastname, firstname, id`,
			likeEscaper.Replace(lastname)+"%",
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	teachers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (teacher.Teacher, error) {
		return scanTeacher(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect teachers: %w", err)
	}

	return teachers, nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*teacher.Teacher, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)

	t, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("teacher id=%d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get teacher %d: %w", id, err)
	}

	return &t, nil
}

func (r *TeacherRepository) Create(ctx context.Context, firstname, lastname string) (*teacher.Teacher, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO teachers (firstname, lastname) VALUES ($1, $2) RETURNING `+teacherColumns,
		firstname, lastname,
	)

	t, err := scanTeacher(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert teacher: %w", err)
	}

	return &t, nil
}

// Update overwrites both names of the teacher with t.ID and returns the stored row.
func (r *TeacherRepository) Update(ctx context.Context, t teacher.Teacher) (*teacher.Teacher, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE teachers SET firstname = $2, lastname = $3 WHERE id = $1 RETURNING `+teacherColumns,
		t.ID, t.Firstname, t.Lastname,
	)

	updated, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("teacher id=%d: %w", t.ID, err)
		}
		return nil, fmt.Errorf("failed to update teacher %d: %w", t.ID, err)
	}

	return &updated, nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("teacher id=%d: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func scanTeacher(row pgx.Row) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := row.Scan(&t.ID, &t.Firstname, &t.Lastname)
	return t, err
}
