package wizard

import (
	"time"

	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
)

// QuizReadyMsg is sent when generation succeeded and the quiz is active.
type QuizReadyMsg struct{}

// coursesLoadedMsg carries the course list for the selection stage.
type coursesLoadedMsg struct {
	Courses []store.Course
	Err     error
}

// courseCreatedMsg confirms a new course was persisted.
type courseCreatedMsg struct {
	Course store.Course
	Err    error
}

// objectivesLoadedMsg carries the course's objectives, used to build the
// weak-topics pool and the comprehensive union.
type objectivesLoadedMsg struct {
	PickedType string
	Objectives []store.LearningObjective
	Err        error
}

// documentLoadedMsg carries the loaded document file.
type documentLoadedMsg struct {
	Name string
	Text string
	Err  error
}

// subtopicsExtractedMsg carries an extraction result with the epoch it was
// issued under.
type subtopicsExtractedMsg struct {
	Epoch     int
	Subtopics []string
	Err       error
}

// quizGeneratedMsg carries a generation result with its epoch.
type quizGeneratedMsg struct {
	Epoch     int
	Questions []quizgen.Question
	Err       error
}

// spinnerTickMsg animates the generating stage.
type spinnerTickMsg time.Time
