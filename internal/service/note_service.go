package service

import (
	"context"
	"errors"
	"strings"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

var (
	// ErrNoteNotFound indicates the referenced note does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotOwner is returned when a non-owner, non-admin user tries to
	// modify someone else's note.
	ErrNotOwner = errors.New("you can only modify your own notes")
)

// NoteCreate carries the fields for a new note.
type NoteCreate struct {
	Title       string
	Content     string
	SubjectID   int64
	Topic       string
	FileURL     string
	IsPublished bool
}

// NoteUpdate applies only the fields explicitly provided.
type NoteUpdate struct {
	Title       *string
	Content     *string
	Topic       *string
	FileURL     *string
	IsPublished *bool
}

// NoteList bundles a page of notes with the unpaginated total.
type NoteList struct {
	Notes   []domain.Note
	Total   int64
	Page    int
	PerPage int
}

// NoteService coordinates note CRUD, search, and ownership checks.
type NoteService interface {
	List(ctx context.Context, filter repository.NoteFilter, page, perPage int) (*NoteList, error)
	Get(ctx context.Context, id int64) (*domain.Note, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Note, error)
	ListAll(ctx context.Context) ([]domain.Note, error)
	Create(ctx context.Context, authorID int64, create NoteCreate) (*domain.Note, error)
	Update(ctx context.Context, actor *domain.User, id int64, update NoteUpdate) (*domain.Note, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	Search(ctx context.Context, search repository.NoteSearch) ([]domain.Note, error)
	TogglePublish(ctx context.Context, id int64) (*domain.Note, error)
	AttachFile(ctx context.Context, actorID, noteID int64, fileURL string) error
}

type noteService struct {
	notes    repository.NoteRepository
	subjects repository.SubjectRepository
}

func NewNoteService(notes repository.NoteRepository, subjects repository.SubjectRepository) NoteService {
	return &noteService{
		notes:    notes,
		subjects: subjects,
	}
}

func (s *noteService) List(ctx context.Context, filter repository.NoteFilter, page, perPage int) (*NoteList, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	if filter.ExamType != "" && !domain.ValidExamType(filter.ExamType) {
		return nil, validationError("exam_type must be OL or AL")
	}

	total, err := s.notes.CountFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Offset = (page - 1) * perPage
	filter.Limit = perPage
	notes, err := s.notes.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &NoteList{
		Notes:   notes,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Get returns the note and bumps its view counter.
func (s *noteService) Get(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.notes.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	note.ViewCount++
	return note, nil
}

func (s *noteService) get(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Note, error) {
	return s.notes.ListByAuthor(ctx, authorID)
}

func (s *noteService) ListAll(ctx context.Context) ([]domain.Note, error) {
	return s.notes.ListAll(ctx)
}

func (s *noteService) Create(ctx context.Context, authorID int64, create NoteCreate) (*domain.Note, error) {
	title := strings.TrimSpace(create.Title)
	if title == "" || len(title) > 200 {
		return nil, validationError("title must be 1-200 characters")
	}
	if strings.TrimSpace(create.Content) == "" {
		return nil, validationError("content is required")
	}
	if len(create.Topic) > 100 {
		return nil, validationError("topic must be at most 100 characters")
	}

	if _, err := s.subjects.Get(ctx, create.SubjectID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	note := &domain.Note{
		Title:       title,
		Content:     create.Content,
		SubjectID:   create.SubjectID,
		Topic:       create.Topic,
		AuthorID:    authorID,
		FileURL:     create.FileURL,
		IsPublished: create.IsPublished,
	}
	if _, err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func canModify(actor *domain.User, note *domain.Note) bool {
	return actor != nil && (note.AuthorID == actor.ID || actor.IsAdmin)
}

func (s *noteService) Update(ctx context.Context, actor *domain.User, id int64, update NoteUpdate) (*domain.Note, error) {
	note, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, note) {
		return nil, ErrNotOwner
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" || len(title) > 200 {
			return nil, validationError("title must be 1-200 characters")
		}
		note.Title = title
	}
	if update.Content != nil {
		if strings.TrimSpace(*update.Content) == "" {
			return nil, validationError("content is required")
		}
		note.Content = *update.Content
	}
	if update.Topic != nil {
		if len(*update.Topic) > 100 {
			return nil, validationError("topic must be at most 100 characters")
		}
		note.Topic = *update.Topic
	}
	if update.FileURL != nil {
		note.FileURL = *update.FileURL
	}
	if update.IsPublished != nil {
		note.IsPublished = *update.IsPublished
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	note, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, note) {
		return ErrNotOwner
	}
	return s.notes.Delete(ctx, id)
}

func (s *noteService) Search(ctx context.Context, search repository.NoteSearch) ([]domain.Note, error) {
	if len(strings.TrimSpace(search.Query)) < 2 {
		return nil, validationError("search query must be at least 2 characters")
	}
	if search.ExamType != "" && !domain.ValidExamType(search.ExamType) {
		return nil, validationError("exam_type must be OL or AL")
	}
	if search.Limit < 1 || search.Limit > 100 {
		search.Limit = 50
	}
	return s.notes.Search(ctx, search)
}

func (s *noteService) TogglePublish(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	note.IsPublished = !note.IsPublished
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// AttachFile sets the note's file URL when the caller owns the note. A
// mismatched owner or missing note is skipped silently; upload success does
// not depend on the attachment.
func (s *noteService) AttachFile(ctx context.Context, actorID, noteID int64, fileURL string) error {
	note, err := s.get(ctx, noteID)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return nil
		}
		return err
	}
	if note.AuthorID != actorID {
		return nil
	}
	note.FileURL = fileURL
	return s.notes.Update(ctx, note)
}
