package service

import (
	"context"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

// StatsService aggregates platform counters for the admin dashboard.
type StatsService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	users    repository.UserRepository
	notes    repository.NoteRepository
	subjects repository.SubjectRepository
}

func NewStatsService(users repository.UserRepository, notes repository.NoteRepository, subjects repository.SubjectRepository) StatsService {
	return &statsService{
		users:    users,
		notes:    notes,
		subjects: subjects,
	}
}

func (s *statsService) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		stats domain.Stats
		err   error
	)

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.VerifiedUsers, err = s.users.CountVerified(ctx); err != nil {
		return nil, err
	}
	if stats.TotalNotes, err = s.notes.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PublishedNotes, err = s.notes.CountPublished(ctx); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.notes.SumViews(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSubjects, err = s.subjects.Count(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}
