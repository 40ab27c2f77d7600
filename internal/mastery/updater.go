package mastery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
)

// ApplyInput carries everything the updater needs from a submitted quiz.
type ApplyInput struct {
	OwnerID            string
	QuizType           string
	PersonalizedType   string
	CourseID           string
	CourseName         string
	SourceDocumentName string
	Questions          []quizgen.Question
	Answers            map[string]int
}

// Result summarizes what an Apply call persisted.
type Result struct {
	Updated int
	Created int
}

// Updater merges quiz performance into persisted learning objectives.
type Updater struct {
	objectives store.ObjectiveRepo
	now        func() time.Time
}

// NewUpdater returns an Updater writing through the given repository.
func NewUpdater(objectives store.ObjectiveRepo) *Updater {
	return &Updater{objectives: objectives, now: time.Now}
}

// Apply evaluates the quiz and persists changed and new objectives as one
// batch. Quick quizzes are a no-op. In weak-topics mode objectives are
// only ever updated; a subtopic with no existing record is skipped. In the
// other personalized modes a missing record is created from the quiz's
// source document. Re-applying the same answers is idempotent: once the
// statuses match, the batch is empty and nothing is written.
func (u *Updater) Apply(ctx context.Context, in ApplyInput) (Result, error) {
	var res Result
	if in.QuizType != store.QuizTypePersonalized {
		return res, nil
	}

	groups := Evaluate(in.Questions, in.Answers)
	if len(groups) == 0 {
		return res, nil
	}

	existing, err := u.objectives.ForOwner(ctx, in.OwnerID, in.CourseID)
	if err != nil {
		return res, err
	}

	weakMode := in.PersonalizedType == store.PersonalizedWeakTopics
	now := u.now()

	var batch []store.LearningObjective
	for _, g := range groups {
		status := Classify(g)

		if obj := findObjective(existing, g.Subtopic, in.SourceDocumentName, weakMode); obj != nil {
			if obj.Status == status && obj.OwnerID != "" {
				continue
			}
			obj.Status = status
			obj.OwnerID = in.OwnerID
			obj.UpdatedAt = now
			batch = append(batch, *obj)
			res.Updated++
			continue
		}

		if weakMode || in.SourceDocumentName == "" {
			continue
		}

		courseID := in.CourseID
		batch = append(batch, store.LearningObjective{
			ID:                 uuid.NewString(),
			OwnerID:            in.OwnerID,
			Name:               g.Subtopic,
			Status:             status,
			SourceDocumentName: in.SourceDocumentName,
			CourseID:           &courseID,
			CourseName:         in.CourseName,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		res.Created++
	}

	if len(batch) == 0 {
		return res, nil
	}
	if err := u.objectives.SaveAll(ctx, batch); err != nil {
		return Result{}, err
	}
	return res, nil
}

// findObjective matches by exact subtopic name. Outside weak-topics mode
// the record must also stem from the same source document.
func findObjective(existing []store.LearningObjective, name, sourceDoc string, weakMode bool) *store.LearningObjective {
	for i := range existing {
		if existing[i].Name != name {
			continue
		}
		if !weakMode && existing[i].SourceDocumentName != sourceDoc {
			continue
		}
		return &existing[i]
	}
	return nil
}
