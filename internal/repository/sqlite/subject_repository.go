package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

const createSubjectsTable = `
CREATE TABLE IF NOT EXISTS subjects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	exam_type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	UNIQUE(name, exam_type)
);
CREATE INDEX IF NOT EXISTS idx_subjects_name ON subjects(name);
`

type SubjectRepository struct {
	db *sql.DB
}

func NewSubjectRepository(db *sql.DB) repository.SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSubjectsTable); err != nil {
		return fmt.Errorf("create subjects table: %w", err)
	}
	return nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *domain.Subject) (int64, error) {
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO subjects (name, exam_type, description, is_active, created_at)
VALUES (?, ?, ?, ?, ?)`,
		subject.Name,
		string(subject.ExamType),
		subject.Description,
		subject.IsActive,
		subject.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("subject already exists: %w", err)
		}
		return 0, fmt.Errorf("insert subject: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("subject last insert id: %w", err)
	}
	subject.ID = id
	return id, nil
}

const selectSubjectColumns = `
SELECT id, name, exam_type, description, is_active, created_at
FROM subjects`

func (r *SubjectRepository) Get(ctx context.Context, id int64) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, selectSubjectColumns+` WHERE id = ?`, id)
	return scanSubject(row)
}

func (r *SubjectRepository) GetByNameAndExamType(ctx context.Context, name string, examType domain.ExamType) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, selectSubjectColumns+` WHERE name = ? AND exam_type = ?`, name, string(examType))
	return scanSubject(row)
}

func (r *SubjectRepository) Update(ctx context.Context, subject *domain.Subject) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE subjects
SET name = ?, exam_type = ?, description = ?, is_active = ?
WHERE id = ?`,
		subject.Name,
		string(subject.ExamType),
		subject.Description,
		subject.IsActive,
		subject.ID,
	)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subject rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject not found")
	}
	return nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subject rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject not found")
	}
	return nil
}

func (r *SubjectRepository) List(ctx context.Context, filter repository.SubjectFilter) ([]domain.Subject, error) {
	query := selectSubjectColumns
	var conds []string
	var args []any

	if filter.ExamType != "" {
		conds = append(conds, "exam_type = ?")
		args = append(args, filter.ExamType)
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()
	return collectSubjects(rows)
}

func (r *SubjectRepository) SearchByName(ctx context.Context, query string, limit int) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		selectSubjectColumns+` WHERE is_active = 1 AND name LIKE '%' || ? || '%' ORDER BY name LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search subjects: %w", err)
	}
	defer rows.Close()
	return collectSubjects(rows)
}

func (r *SubjectRepository) Count(ctx context.Context) (int64, error) {
	return countRow(ctx, r.db, `SELECT COUNT(*) FROM subjects`)
}

func collectSubjects(rows *sql.Rows) ([]domain.Subject, error) {
	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		var examType string
		if err := rows.Scan(&s.ID, &s.Name, &examType, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		s.ExamType = domain.ExamType(examType)
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func scanSubject(row interface {
	Scan(dest ...any) error
}) (*domain.Subject, error) {
	var s domain.Subject
	var examType string
	if err := row.Scan(&s.ID, &s.Name, &examType, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject not found")
		}
		return nil, fmt.Errorf("scan subject: %w", err)
	}
	s.ExamType = domain.ExamType(examType)
	return &s, nil
}
