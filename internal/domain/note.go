package domain

import "time"

// Note is a study material entry authored by a user under a subject.
type Note struct {
	ID          int64
	Title       string
	Content     string
	SubjectID   int64
	Topic       string
	AuthorID    int64
	FileURL     string
	IsPublished bool
	ViewCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats aggregates platform-wide counters for the admin dashboard.
type Stats struct {
	TotalUsers     int64
	TotalNotes     int64
	TotalSubjects  int64
	VerifiedUsers  int64
	PublishedNotes int64
	TotalViews     int64
}
