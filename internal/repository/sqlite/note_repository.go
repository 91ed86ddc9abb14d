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

const createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	subject_id INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	topic TEXT NOT NULL DEFAULT '',
	author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	file_url TEXT NOT NULL DEFAULT '',
	is_published INTEGER NOT NULL DEFAULT 1,
	view_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_subject ON notes(subject_id);
CREATE INDEX IF NOT EXISTS idx_notes_author ON notes(author_id);
CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
`

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (int64, error) {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = note.CreatedAt

	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (title, content, subject_id, topic, author_id, file_url, is_published, view_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.Title,
		note.Content,
		note.SubjectID,
		note.Topic,
		note.AuthorID,
		note.FileURL,
		note.IsPublished,
		note.ViewCount,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("note last insert id: %w", err)
	}
	note.ID = id
	return id, nil
}

const selectNoteColumns = `
SELECT n.id, n.title, n.content, n.subject_id, n.topic, n.author_id, n.file_url, n.is_published, n.view_count, n.created_at, n.updated_at
FROM notes n`

func (r *NoteRepository) Get(ctx context.Context, id int64) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, selectNoteColumns+` WHERE n.id = ?`, id)
	return scanNote(row)
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	note.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, subject_id = ?, topic = ?, file_url = ?, is_published = ?, updated_at = ?
WHERE id = ?`,
		note.Title,
		note.Content,
		note.SubjectID,
		note.Topic,
		note.FileURL,
		note.IsPublished,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}

func noteFilterClauses(filter repository.NoteFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.SubjectID > 0 {
		conds = append(conds, "n.subject_id = ?")
		args = append(args, filter.SubjectID)
	}
	if filter.ExamType != "" {
		conds = append(conds, "n.subject_id IN (SELECT id FROM subjects WHERE exam_type = ?)")
		args = append(args, filter.ExamType)
	}
	if filter.Topic != "" {
		conds = append(conds, "n.topic LIKE '%' || ? || '%'")
		args = append(args, filter.Topic)
	}
	if filter.PublishedOnly {
		conds = append(conds, "n.is_published = 1")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *NoteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	where, args := noteFilterClauses(filter)
	query := selectNoteColumns + where + " ORDER BY n.created_at DESC, n.id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *NoteRepository) CountFiltered(ctx context.Context, filter repository.NoteFilter) (int64, error) {
	where, args := noteFilterClauses(filter)
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes n`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		selectNoteColumns+` WHERE n.author_id = ? ORDER BY n.created_at DESC, n.id DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list notes by author: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *NoteRepository) ListAll(ctx context.Context) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNoteColumns+` ORDER BY n.created_at DESC, n.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *NoteRepository) Search(ctx context.Context, search repository.NoteSearch) ([]domain.Note, error) {
	conds := []string{
		"n.is_published = 1",
		"(n.title LIKE '%' || ? || '%' OR n.content LIKE '%' || ? || '%' OR (n.topic != '' AND n.topic LIKE '%' || ? || '%'))",
	}
	args := []any{search.Query, search.Query, search.Query}

	if search.SubjectID > 0 {
		conds = append(conds, "n.subject_id = ?")
		args = append(args, search.SubjectID)
	}
	if search.ExamType != "" {
		conds = append(conds, "n.subject_id IN (SELECT id FROM subjects WHERE exam_type = ?)")
		args = append(args, search.ExamType)
	}

	query := selectNoteColumns + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY n.view_count DESC, n.id DESC"
	if search.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, search.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *NoteRepository) IncrementViews(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE notes SET view_count = view_count + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *NoteRepository) Count(ctx context.Context) (int64, error) {
	return countRow(ctx, r.db, `SELECT COUNT(*) FROM notes`)
}

func (r *NoteRepository) CountPublished(ctx context.Context) (int64, error) {
	return countRow(ctx, r.db, `SELECT COUNT(*) FROM notes WHERE is_published = 1`)
}

func (r *NoteRepository) SumViews(ctx context.Context) (int64, error) {
	return countRow(ctx, r.db, `SELECT COALESCE(SUM(view_count), 0) FROM notes`)
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(
			&n.ID,
			&n.Title,
			&n.Content,
			&n.SubjectID,
			&n.Topic,
			&n.AuthorID,
			&n.FileURL,
			&n.IsPublished,
			&n.ViewCount,
			&n.CreatedAt,
			&n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNote(row interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.SubjectID,
		&n.Topic,
		&n.AuthorID,
		&n.FileURL,
		&n.IsPublished,
		&n.ViewCount,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("note not found")
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}
