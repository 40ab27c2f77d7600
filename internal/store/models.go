package store

import (
	"time"

	"gorm.io/datatypes"
)

// ObjectiveStatus is the mastery status of a learning objective.
type ObjectiveStatus string

const (
	StatusPending      ObjectiveStatus = "pending"
	StatusSuccess      ObjectiveStatus = "success"
	StatusFailure      ObjectiveStatus = "failure"
	StatusIntermediate ObjectiveStatus = "intermediate"
)

// Weak reports whether objectives with this status should be targeted by a
// weak-topics quiz. Pending counts: it has never been demonstrated.
func (s ObjectiveStatus) Weak() bool {
	return s == StatusFailure || s == StatusIntermediate || s == StatusPending
}

// Quiz type labels stored on SavedQuiz.
const (
	QuizTypeQuick        = "quick"
	QuizTypePersonalized = "personalized"
)

// Personalized sub-type labels stored on SavedQuiz.
const (
	PersonalizedComprehensive = "comprehensive"
	PersonalizedNewTopics     = "new_topics"
	PersonalizedWeakTopics    = "weak_topics"
)

// Profile is a local user account.
type Profile struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// Course groups learning objectives and quizzes for one subject.
type Course struct {
	ID        string `gorm:"primaryKey"`
	OwnerID   string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

// LearningObjective tracks mastery of one named subtopic within a course.
// Objectives are never deleted; deleting their course only detaches them.
type LearningObjective struct {
	ID                 string `gorm:"primaryKey"`
	OwnerID            string `gorm:"index;not null"`
	Name               string `gorm:"not null"`
	Status             ObjectiveStatus `gorm:"not null"`
	SourceDocumentName string
	CourseID           *string `gorm:"index"`
	CourseName         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// QuestionRecord is the persisted form of a generated quiz question.
type QuestionRecord struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Subtopic     string   `json:"subtopic,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// SavedQuiz is one completed, saved quiz run. Immutable after creation
// except for batch corrections (course detachment).
type SavedQuiz struct {
	ID                 string `gorm:"primaryKey"`
	OwnerID            string `gorm:"index;not null"`
	Questions          datatypes.JSONType[[]QuestionRecord]
	Answers            datatypes.JSONType[map[string]int]
	Score              int
	TotalQuestions     int
	QuizType           string `gorm:"not null"`
	CourseID           *string `gorm:"index"`
	Difficulty         string
	TimerEnabled       bool
	TotalTimeAllocated int // seconds; zero when untimed
	PersonalizedType   string
	SavedAt            time.Time
}
