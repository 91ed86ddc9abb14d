package repository

import (
	"context"

	"sl-notes/internal/domain"
)

// NoteFilter narrows note listings. Zero values mean "no filter".
type NoteFilter struct {
	SubjectID     int64
	ExamType      string
	Topic         string
	PublishedOnly bool
	Offset        int
	Limit         int
}

// NoteSearch describes a substring search over published notes.
type NoteSearch struct {
	Query     string
	SubjectID int64
	ExamType  string
	Limit     int
}

// NoteRepository exposes persistence operations for Note entities.
type NoteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, note *domain.Note) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter NoteFilter) ([]domain.Note, error)
	CountFiltered(ctx context.Context, filter NoteFilter) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Note, error)
	ListAll(ctx context.Context) ([]domain.Note, error)
	Search(ctx context.Context, search NoteSearch) ([]domain.Note, error)
	IncrementViews(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	SumViews(ctx context.Context) (int64, error)
}
