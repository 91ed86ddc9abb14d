package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

var (
	// ErrSubjectNotFound indicates the referenced subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectExists is returned when a subject with the same name and exam
	// type already exists.
	ErrSubjectExists = errors.New("subject already exists")
)

// SubjectUpdate applies only the fields explicitly provided.
type SubjectUpdate struct {
	Name        *string
	ExamType    *string
	Description *string
	IsActive    *bool
}

// SubjectService coordinates subject CRUD.
type SubjectService interface {
	List(ctx context.Context, examType string, activeOnly bool) ([]domain.Subject, error)
	Get(ctx context.Context, id int64) (*domain.Subject, error)
	Create(ctx context.Context, name, examType, description string) (*domain.Subject, error)
	Update(ctx context.Context, id int64, update SubjectUpdate) (*domain.Subject, error)
	Delete(ctx context.Context, id int64) (*domain.Subject, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Subject, error)
}

type subjectService struct {
	subjects repository.SubjectRepository
}

func NewSubjectService(subjects repository.SubjectRepository) SubjectService {
	return &subjectService{subjects: subjects}
}

func (s *subjectService) List(ctx context.Context, examType string, activeOnly bool) ([]domain.Subject, error) {
	if examType != "" && !domain.ValidExamType(examType) {
		return nil, validationError("exam_type must be OL or AL")
	}
	return s.subjects.List(ctx, repository.SubjectFilter{
		ExamType:   examType,
		ActiveOnly: activeOnly,
	})
}

func (s *subjectService) Get(ctx context.Context, id int64) (*domain.Subject, error) {
	subject, err := s.subjects.Get(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, name, examType, description string) (*domain.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, validationError("name must be 1-100 characters")
	}
	if !domain.ValidExamType(examType) {
		return nil, validationError("exam_type must be OL or AL")
	}
	if len(description) > 500 {
		return nil, validationError("description must be at most 500 characters")
	}

	// best-effort check; the UNIQUE(name, exam_type) constraint is authoritative
	if _, err := s.subjects.GetByNameAndExamType(ctx, name, domain.ExamType(examType)); err == nil {
		return nil, fmt.Errorf("%w: %q for %s", ErrSubjectExists, name, examType)
	}

	subject := &domain.Subject{
		Name:        name,
		ExamType:    domain.ExamType(examType),
		Description: description,
		IsActive:    true,
	}
	if _, err := s.subjects.Create(ctx, subject); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, fmt.Errorf("%w: %q for %s", ErrSubjectExists, name, examType)
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Update(ctx context.Context, id int64, update SubjectUpdate) (*domain.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" || len(name) > 100 {
			return nil, validationError("name must be 1-100 characters")
		}
		subject.Name = name
	}
	if update.ExamType != nil {
		if !domain.ValidExamType(*update.ExamType) {
			return nil, validationError("exam_type must be OL or AL")
		}
		subject.ExamType = domain.ExamType(*update.ExamType)
	}
	if update.Description != nil {
		if len(*update.Description) > 500 {
			return nil, validationError("description must be at most 500 characters")
		}
		subject.Description = *update.Description
	}
	if update.IsActive != nil {
		subject.IsActive = *update.IsActive
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Search(ctx context.Context, query string, limit int) ([]domain.Subject, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError("search query is required")
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.subjects.SearchByName(ctx, query, limit)
}

func (s *subjectService) Delete(ctx context.Context, id int64) (*domain.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		return nil, err
	}
	return subject, nil
}
