package domain

import "time"

type ExamType string

const (
	ExamTypeOL ExamType = "OL"
	ExamTypeAL ExamType = "AL"
)

// ValidExamType reports whether s is one of the supported exam types.
func ValidExamType(s string) bool {
	return s == string(ExamTypeOL) || s == string(ExamTypeAL)
}

// Subject groups notes under an exam subject (e.g. "Mathematics" for OL).
type Subject struct {
	ID          int64
	Name        string
	ExamType    ExamType
	Description string
	IsActive    bool
	CreatedAt   time.Time
}
