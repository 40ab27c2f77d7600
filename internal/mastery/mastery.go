// Package mastery converts quiz performance into learning-objective
// statuses. After a personalized quiz is submitted, each subtopic's
// correct-answer percentage is classified and merged into the learner's
// persisted objectives for the course.
package mastery

import (
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
)

// Performance is the aggregated result for one subtopic of a quiz.
type Performance struct {
	Subtopic string
	Correct  int
	Total    int
}

// Percentage returns the correct-answer percentage for this group.
func (p Performance) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Total) * 100
}

// Evaluate groups a quiz's questions by subtopic and counts correct
// answers. Questions without a subtopic tag carry no objective and are
// skipped. Unanswered questions count as incorrect. Groups are returned
// in first-appearance order.
func Evaluate(questions []quizgen.Question, answers map[string]int) []Performance {
	index := make(map[string]int)
	var groups []Performance

	for _, q := range questions {
		if q.Subtopic == "" {
			continue
		}
		i, ok := index[q.Subtopic]
		if !ok {
			i = len(groups)
			index[q.Subtopic] = i
			groups = append(groups, Performance{Subtopic: q.Subtopic})
		}
		groups[i].Total++
		if idx, answered := answers[q.ID]; answered && idx == q.CorrectIndex {
			groups[i].Correct++
		}
	}
	return groups
}

// Classify maps a performance to an objective status: 90% and above is
// success, below 50% is failure, anything between is intermediate.
func Classify(p Performance) store.ObjectiveStatus {
	pct := p.Percentage()
	switch {
	case pct >= 90:
		return store.StatusSuccess
	case pct < 50:
		return store.StatusFailure
	default:
		return store.StatusIntermediate
	}
}
