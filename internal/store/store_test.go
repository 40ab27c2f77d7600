package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open("file::memory:?cache=private")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestProfileRepo_CreateAndLookup(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.Profiles().Create(ctx, "ada", "hash1")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	got, err := st.Profiles().ByName(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "hash1", got.PasswordHash)

	_, err = st.Profiles().ByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	// Duplicate names rejected by the unique index.
	_, err = st.Profiles().Create(ctx, "ada", "hash2")
	assert.Error(t, err)
}

func TestProfileRepo_UpdatePassword(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.Profiles().Create(ctx, "ada", "old")
	require.NoError(t, err)

	require.NoError(t, st.Profiles().UpdatePassword(ctx, "ada", "new"))

	got, err := st.Profiles().ByName(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	err = st.Profiles().UpdatePassword(ctx, "nobody", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepo_DeleteDetachesObjectivesAndQuizzes(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	owner := "owner-1"
	course, err := st.Courses().Create(ctx, "Biology", owner)
	require.NoError(t, err)

	obj := LearningObjective{
		ID:         "obj-1",
		OwnerID:    owner,
		Name:       "Mitosis",
		Status:     StatusFailure,
		CourseID:   &course.ID,
		CourseName: course.Name,
	}
	require.NoError(t, st.Objectives().SaveAll(ctx, []LearningObjective{obj}))

	_, err = st.Quizzes().Save(ctx, SavedQuiz{
		OwnerID:        owner,
		QuizType:       QuizTypePersonalized,
		CourseID:       &course.ID,
		Score:          3,
		TotalQuestions: 5,
	})
	require.NoError(t, err)

	require.NoError(t, st.Courses().Delete(ctx, course.ID, owner))

	courses, err := st.Courses().List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, courses)

	// Objective survives, detached.
	objs, err := st.Objectives().ForOwner(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Nil(t, objs[0].CourseID)
	assert.Empty(t, objs[0].CourseName)
	assert.Equal(t, StatusFailure, objs[0].Status)

	// Quiz survives, detached.
	quizzes, err := st.Quizzes().ForOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Nil(t, quizzes[0].CourseID)
}

func TestCourseRepo_DeleteWrongOwner(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	course, err := st.Courses().Create(ctx, "Chemistry", "owner-1")
	require.NoError(t, err)

	err = st.Courses().Delete(ctx, course.ID, "owner-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectiveRepo_CourseFilter(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	owner := "owner-1"
	c1 := "course-1"
	c2 := "course-2"
	batch := []LearningObjective{
		{ID: "o1", OwnerID: owner, Name: "Cells", Status: StatusPending, CourseID: &c1},
		{ID: "o2", OwnerID: owner, Name: "Atoms", Status: StatusSuccess, CourseID: &c2},
		{ID: "o3", OwnerID: "other", Name: "Cells", Status: StatusPending, CourseID: &c1},
	}
	require.NoError(t, st.Objectives().SaveAll(ctx, batch))

	all, err := st.Objectives().ForOwner(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := st.Objectives().ForOwner(ctx, owner, c1)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Cells", scoped[0].Name)
}

func TestObjectiveRepo_SaveAllUpserts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	obj := LearningObjective{ID: "o1", OwnerID: "u", Name: "Cells", Status: StatusPending}
	require.NoError(t, st.Objectives().SaveAll(ctx, []LearningObjective{obj}))

	obj.Status = StatusSuccess
	require.NoError(t, st.Objectives().SaveAll(ctx, []LearningObjective{obj}))

	got, err := st.Objectives().ForOwner(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StatusSuccess, got[0].Status)
}

func TestQuizRepo_RoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	questions := []QuestionRecord{
		{
			ID:           "q1",
			Prompt:       "What phase follows prophase?",
			Options:      []string{"Metaphase", "Anaphase", "Telophase", "Interphase"},
			CorrectIndex: 0,
			Subtopic:     "Mitosis",
		},
	}
	saved, err := st.Quizzes().Save(ctx, SavedQuiz{
		OwnerID:        "u",
		Questions:      datatypes.NewJSONType(questions),
		Answers:        datatypes.NewJSONType(map[string]int{"q1": 0}),
		Score:          1,
		TotalQuestions: 1,
		QuizType:       QuizTypeQuick,
		Difficulty:     "medium",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.SavedAt.IsZero())

	list, err := st.Quizzes().ForOwner(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0].Questions.Data()
	require.Len(t, got, 1)
	assert.Equal(t, "Mitosis", got[0].Subtopic)
	assert.Equal(t, []string{"Metaphase", "Anaphase", "Telophase", "Interphase"}, got[0].Options)
	assert.Equal(t, 0, list[0].Answers.Data()["q1"])
}
