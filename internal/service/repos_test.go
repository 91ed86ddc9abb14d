package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

// In-memory repository implementations backing the service tests.

type memUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *memUserRepo) Init(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, fmt.Errorf("user already exists")
		}
	}
	user.ID = r.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *memUserRepo) GetByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("user not found")
	}
	for _, u := range r.users {
		if u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (r *memUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountVerified(context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsVerified {
			n++
		}
	}
	return n, nil
}

type memSubjectRepo struct {
	nextID   int64
	subjects map[int64]*domain.Subject
}

func newMemSubjectRepo() *memSubjectRepo {
	return &memSubjectRepo{nextID: 1, subjects: map[int64]*domain.Subject{}}
}

func (r *memSubjectRepo) Init(context.Context) error { return nil }

func (r *memSubjectRepo) Create(_ context.Context, subject *domain.Subject) (int64, error) {
	for _, s := range r.subjects {
		if s.Name == subject.Name && s.ExamType == subject.ExamType {
			return 0, fmt.Errorf("subject already exists")
		}
	}
	subject.ID = r.nextID
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	r.nextID++
	cp := *subject
	r.subjects[subject.ID] = &cp
	return subject.ID, nil
}

func (r *memSubjectRepo) Get(_ context.Context, id int64) (*domain.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject not found")
	}
	cp := *s
	return &cp, nil
}

func (r *memSubjectRepo) GetByNameAndExamType(_ context.Context, name string, examType domain.ExamType) (*domain.Subject, error) {
	for _, s := range r.subjects {
		if s.Name == name && s.ExamType == examType {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("subject not found")
}

func (r *memSubjectRepo) Update(_ context.Context, subject *domain.Subject) error {
	if _, ok := r.subjects[subject.ID]; !ok {
		return fmt.Errorf("subject not found")
	}
	cp := *subject
	r.subjects[subject.ID] = &cp
	return nil
}

func (r *memSubjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.subjects[id]; !ok {
		return fmt.Errorf("subject not found")
	}
	delete(r.subjects, id)
	return nil
}

func (r *memSubjectRepo) List(_ context.Context, filter repository.SubjectFilter) ([]domain.Subject, error) {
	var subjects []domain.Subject
	for _, s := range r.subjects {
		if filter.ExamType != "" && string(s.ExamType) != filter.ExamType {
			continue
		}
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		subjects = append(subjects, *s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

func (r *memSubjectRepo) SearchByName(_ context.Context, query string, limit int) ([]domain.Subject, error) {
	var subjects []domain.Subject
	for _, s := range r.subjects {
		if s.IsActive && strings.Contains(strings.ToLower(s.Name), strings.ToLower(query)) {
			subjects = append(subjects, *s)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	if limit > 0 && len(subjects) > limit {
		subjects = subjects[:limit]
	}
	return subjects, nil
}

func (r *memSubjectRepo) Count(context.Context) (int64, error) {
	return int64(len(r.subjects)), nil
}

type memNoteRepo struct {
	nextID int64
	notes  map[int64]*domain.Note
	// exam types by subject id, to support exam_type filters
	examTypes map[int64]string
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{nextID: 1, notes: map[int64]*domain.Note{}, examTypes: map[int64]string{}}
}

func (r *memNoteRepo) Init(context.Context) error { return nil }

func (r *memNoteRepo) Create(_ context.Context, note *domain.Note) (int64, error) {
	note.ID = r.nextID
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = note.CreatedAt
	r.nextID++
	cp := *note
	r.notes[note.ID] = &cp
	return note.ID, nil
}

func (r *memNoteRepo) Get(_ context.Context, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, fmt.Errorf("note not found")
	}
	cp := *n
	return &cp, nil
}

func (r *memNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return fmt.Errorf("note not found")
	}
	note.UpdatedAt = time.Now().UTC()
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *memNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return fmt.Errorf("note not found")
	}
	delete(r.notes, id)
	return nil
}

func (r *memNoteRepo) matches(n *domain.Note, filter repository.NoteFilter) bool {
	if filter.SubjectID > 0 && n.SubjectID != filter.SubjectID {
		return false
	}
	if filter.ExamType != "" && r.examTypes[n.SubjectID] != filter.ExamType {
		return false
	}
	if filter.Topic != "" && !strings.Contains(strings.ToLower(n.Topic), strings.ToLower(filter.Topic)) {
		return false
	}
	if filter.PublishedOnly && !n.IsPublished {
		return false
	}
	return true
}

func (r *memNoteRepo) sorted() []domain.Note {
	var notes []domain.Note
	for _, n := range r.notes {
		notes = append(notes, *n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID > notes[j].ID })
	return notes
}

func (r *memNoteRepo) List(_ context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	var notes []domain.Note
	for _, n := range r.sorted() {
		if r.matches(&n, filter) {
			notes = append(notes, n)
		}
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(notes) {
			return nil, nil
		}
		notes = notes[filter.Offset:]
	}
	if filter.Limit > 0 && len(notes) > filter.Limit {
		notes = notes[:filter.Limit]
	}
	return notes, nil
}

func (r *memNoteRepo) CountFiltered(_ context.Context, filter repository.NoteFilter) (int64, error) {
	var n int64
	for _, note := range r.notes {
		if r.matches(note, filter) {
			n++
		}
	}
	return n, nil
}

func (r *memNoteRepo) ListByAuthor(_ context.Context, authorID int64) ([]domain.Note, error) {
	var notes []domain.Note
	for _, n := range r.sorted() {
		if n.AuthorID == authorID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (r *memNoteRepo) ListAll(context.Context) ([]domain.Note, error) {
	return r.sorted(), nil
}

func (r *memNoteRepo) Search(_ context.Context, search repository.NoteSearch) ([]domain.Note, error) {
	q := strings.ToLower(search.Query)
	var notes []domain.Note
	for _, n := range r.sorted() {
		if !n.IsPublished {
			continue
		}
		if search.SubjectID > 0 && n.SubjectID != search.SubjectID {
			continue
		}
		if search.ExamType != "" && r.examTypes[n.SubjectID] != search.ExamType {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			(n.Topic != "" && strings.Contains(strings.ToLower(n.Topic), q)) {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ViewCount > notes[j].ViewCount })
	if search.Limit > 0 && len(notes) > search.Limit {
		notes = notes[:search.Limit]
	}
	return notes, nil
}

func (r *memNoteRepo) IncrementViews(_ context.Context, id int64) error {
	n, ok := r.notes[id]
	if !ok {
		return fmt.Errorf("note not found")
	}
	n.ViewCount++
	return nil
}

func (r *memNoteRepo) Count(context.Context) (int64, error) {
	return int64(len(r.notes)), nil
}

func (r *memNoteRepo) CountPublished(context.Context) (int64, error) {
	var n int64
	for _, note := range r.notes {
		if note.IsPublished {
			n++
		}
	}
	return n, nil
}

func (r *memNoteRepo) SumViews(context.Context) (int64, error) {
	var sum int64
	for _, note := range r.notes {
		sum += note.ViewCount
	}
	return sum, nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.SubjectRepository = (*memSubjectRepo)(nil)
	_ repository.NoteRepository    = (*memNoteRepo)(nil)
)
