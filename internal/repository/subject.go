package repository

import (
	"context"

	"sl-notes/internal/domain"
)

// SubjectFilter narrows subject listings.
type SubjectFilter struct {
	ExamType   string
	ActiveOnly bool
}

// SubjectRepository exposes persistence operations for Subject entities.
type SubjectRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, subject *domain.Subject) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Subject, error)
	GetByNameAndExamType(ctx context.Context, name string, examType domain.ExamType) (*domain.Subject, error)
	Update(ctx context.Context, subject *domain.Subject) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter SubjectFilter) ([]domain.Subject, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Subject, error)
	Count(ctx context.Context) (int64, error)
}
