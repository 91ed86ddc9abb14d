package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sl-notes/internal/domain"
	"sl-notes/internal/repository"
)

func TestSubjectRepository_UniquePerExamType(t *testing.T) {
	_, subjects, _ := openTestDB(t)
	ctx := context.Background()

	_, err := subjects.Create(ctx, &domain.Subject{Name: "Mathematics", ExamType: domain.ExamTypeOL, IsActive: true})
	require.NoError(t, err)

	_, err = subjects.Create(ctx, &domain.Subject{Name: "Mathematics", ExamType: domain.ExamTypeOL, IsActive: true})
	assert.ErrorContains(t, err, "already exists")

	// the same name under the other stream is a distinct subject
	_, err = subjects.Create(ctx, &domain.Subject{Name: "Mathematics", ExamType: domain.ExamTypeAL, IsActive: true})
	assert.NoError(t, err)
}

func TestSubjectRepository_ListAndSearch(t *testing.T) {
	_, subjects, _ := openTestDB(t)
	ctx := context.Background()

	seed := []domain.Subject{
		{Name: "Mathematics", ExamType: domain.ExamTypeOL, IsActive: true},
		{Name: "Applied Mathematics", ExamType: domain.ExamTypeAL, IsActive: true},
		{Name: "History", ExamType: domain.ExamTypeOL, IsActive: false},
	}
	for i := range seed {
		_, err := subjects.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	all, err := subjects.List(ctx, repository.SubjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := subjects.List(ctx, repository.SubjectFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	olOnly, err := subjects.List(ctx, repository.SubjectFilter{ExamType: "OL"})
	require.NoError(t, err)
	assert.Len(t, olOnly, 2)

	found, err := subjects.SearchByName(ctx, "math", 20)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Applied Mathematics", found[0].Name)

	limited, err := subjects.SearchByName(ctx, "math", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSubjectRepository_GetUpdateDelete(t *testing.T) {
	_, subjects, _ := openTestDB(t)
	ctx := context.Background()

	subject := &domain.Subject{Name: "Chemistry", ExamType: domain.ExamTypeAL, Description: "old", IsActive: true}
	id, err := subjects.Create(ctx, subject)
	require.NoError(t, err)

	byName, err := subjects.GetByNameAndExamType(ctx, "Chemistry", domain.ExamTypeAL)
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	subject.Description = "new"
	subject.IsActive = false
	require.NoError(t, subjects.Update(ctx, subject))

	got, err := subjects.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)
	assert.False(t, got.IsActive)

	require.NoError(t, subjects.Delete(ctx, id))
	_, err = subjects.Get(ctx, id)
	assert.ErrorContains(t, err, "not found")
	assert.ErrorContains(t, subjects.Delete(ctx, id), "not found")
}
