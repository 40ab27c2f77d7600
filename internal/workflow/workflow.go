// Package workflow implements the quiz-creation wizard: a staged state
// machine that collects a mode, course, document, subtopic selection and
// preferences, then hands off to quiz generation. The controller owns the
// only mutable copy of the state; callers receive snapshots and a list of
// side effects (async calls to issue) from each operation.
package workflow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/quizgen"
)

// Stage is one step of the wizard.
type Stage string

const (
	StageInitial           Stage = "initial"
	StageCourseSelection   Stage = "course_selection"
	StageTypeSelection     Stage = "personalized_type_selection"
	StageFileUpload        Stage = "file_upload"
	StageSubtopicSelection Stage = "subtopic_selection"
	StagePreferences       Stage = "preferences"
	StageGenerating        Stage = "generating"
	StageQuizActive        Stage = "quiz_active"
)

// Mode selects the overall quiz flavor.
type Mode string

const (
	ModeQuick        Mode = "quick"
	ModePersonalized Mode = "personalized"
)

// PersonalizedType narrows a personalized quiz.
type PersonalizedType string

const (
	TypeComprehensive PersonalizedType = "comprehensive"
	TypeNewTopics     PersonalizedType = "new_topics"
	TypeWeakTopics    PersonalizedType = "weak_topics"
)

// State is an immutable snapshot of the wizard. Slices and maps are copied
// on the way out; mutating a snapshot never affects the controller.
type State struct {
	Stage            Stage
	Mode             Mode
	PersonalizedType PersonalizedType

	SelectedCourseID   string
	SelectedCourseName string

	DocumentText string
	DocumentName string

	IdentifiedSubtopics []string
	SelectedSubtopics   []string

	NumQuestions int
	Difficulty   string
	TimerEnabled bool

	Questions []quizgen.Question
	Answers   map[string]int
}

// ValidationError rejects an invalid transition before any async work.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrStale is returned when an async result arrives for a wizard run that
// has since been reset. The result must be discarded.
var ErrStale = errors.New("stale workflow result")

// EffectExtractSubtopics asks the caller to run subtopic extraction and
// feed the result back through ApplySubtopics with the same epoch.
type EffectExtractSubtopics struct {
	Epoch        int
	DocumentText string
}

// EffectGenerateQuiz asks the caller to run quiz generation and feed the
// result back through ApplyGeneration with the same epoch.
type EffectGenerateQuiz struct {
	Epoch int
	Input quizgen.GenerateInput
}

// Controller owns the wizard state. It is not safe for concurrent use; in
// an event-loop UI all calls arrive on the update goroutine.
type Controller struct {
	cfg   config.Quiz
	state State
	epoch int
}

// NewController returns a Controller at the initial stage.
func NewController(cfg config.Quiz) *Controller {
	c := &Controller{cfg: cfg}
	c.state = c.freshState()
	return c
}

func (c *Controller) freshState() State {
	return State{
		Stage:        StageInitial,
		NumQuestions: c.cfg.DefaultQuestionCount,
		Difficulty:   c.cfg.DefaultDifficulty,
	}
}

// State returns a defensive snapshot of the current wizard state.
func (c *Controller) State() State {
	s := c.state
	s.IdentifiedSubtopics = slices.Clone(s.IdentifiedSubtopics)
	s.SelectedSubtopics = slices.Clone(s.SelectedSubtopics)
	s.Questions = slices.Clone(s.Questions)
	if s.Answers != nil {
		answers := make(map[string]int, len(s.Answers))
		for k, v := range s.Answers {
			answers[k] = v
		}
		s.Answers = answers
	}
	return s
}

// Epoch identifies the current wizard run. Async results carry the epoch
// they were issued under; a mismatch means the run was reset in flight.
func (c *Controller) Epoch() int { return c.epoch }

// Reset discards all wizard state and invalidates in-flight async results.
func (c *Controller) Reset() {
	c.epoch++
	c.state = c.freshState()
}

// Begin starts the wizard. Quick quizzes go straight to document upload;
// personalized quizzes pick a course first.
func (c *Controller) Begin(mode Mode) error {
	if c.state.Stage != StageInitial {
		return &ValidationError{Field: "stage", Reason: fmt.Sprintf("cannot begin from %s", c.state.Stage)}
	}
	switch mode {
	case ModeQuick:
		c.state.Mode = mode
		c.state.Stage = StageFileUpload
	case ModePersonalized:
		c.state.Mode = mode
		c.state.Stage = StageCourseSelection
	default:
		return &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
	return nil
}

// SelectCourse completes course selection and advances to type selection.
func (c *Controller) SelectCourse(id, name string) error {
	if c.state.Stage != StageCourseSelection {
		return c.wrongStage(StageCourseSelection)
	}
	if id == "" || name == "" {
		return &ValidationError{Field: "course", Reason: "a course must be chosen or created"}
	}
	c.state.SelectedCourseID = id
	c.state.SelectedCourseName = name
	c.state.Stage = StageTypeSelection
	return nil
}

// SelectType completes personalized type selection. For weak-topics quizzes
// the caller passes the names of the learner's weak objectives for the
// chosen course; the wizard skips document upload entirely and moves to
// subtopic selection over that set (which may be empty). Other types
// proceed to document upload.
func (c *Controller) SelectType(t PersonalizedType, weakObjectives []string) error {
	if c.state.Stage != StageTypeSelection {
		return c.wrongStage(StageTypeSelection)
	}
	switch t {
	case TypeWeakTopics:
		c.state.PersonalizedType = t
		c.state.IdentifiedSubtopics = slices.Clone(weakObjectives)
		c.state.SelectedSubtopics = slices.Clone(weakObjectives)
		c.snapToOptions()
		c.state.Stage = StageSubtopicSelection
	case TypeComprehensive, TypeNewTopics:
		c.state.PersonalizedType = t
		c.state.Stage = StageFileUpload
	default:
		return &ValidationError{Field: "personalized_type", Reason: fmt.Sprintf("unknown type %q", t)}
	}
	return nil
}

// SetDocument records the extracted document text and issues subtopic
// extraction. The wizard stays on the upload stage until ApplySubtopics
// delivers the result.
func (c *Controller) SetDocument(name, text string) (EffectExtractSubtopics, error) {
	if c.state.Stage != StageFileUpload {
		return EffectExtractSubtopics{}, c.wrongStage(StageFileUpload)
	}
	if text == "" {
		return EffectExtractSubtopics{}, &ValidationError{Field: "document", Reason: "document text is empty"}
	}
	c.state.DocumentName = name
	c.state.DocumentText = text
	return EffectExtractSubtopics{Epoch: c.epoch, DocumentText: text}, nil
}

// ApplySubtopics delivers the extraction result. With at least one subtopic
// the wizard moves to subtopic selection; with none it skips straight to
// preferences. A failed extraction is treated as zero subtopics: the
// document still works, the quiz just cannot be narrowed.
func (c *Controller) ApplySubtopics(epoch int, subtopics []string) error {
	if epoch != c.epoch {
		return ErrStale
	}
	if c.state.Stage != StageFileUpload {
		return c.wrongStage(StageFileUpload)
	}
	c.state.IdentifiedSubtopics = slices.Clone(subtopics)
	c.state.SelectedSubtopics = slices.Clone(subtopics)
	c.snapToOptions()
	if len(subtopics) > 0 {
		c.state.Stage = StageSubtopicSelection
	} else {
		c.state.Stage = StagePreferences
	}
	return nil
}

// SetSelectedSubtopics replaces the subtopic selection while on the
// selection stage. Every entry must be one of the identified subtopics.
// The question count re-snaps to the recomputed option set.
func (c *Controller) SetSelectedSubtopics(selected []string) error {
	if c.state.Stage != StageSubtopicSelection {
		return c.wrongStage(StageSubtopicSelection)
	}
	for _, s := range selected {
		if !slices.Contains(c.state.IdentifiedSubtopics, s) {
			return &ValidationError{Field: "subtopics", Reason: fmt.Sprintf("%q was not identified in this document", s)}
		}
	}
	c.state.SelectedSubtopics = slices.Clone(selected)
	c.snapToOptions()
	return nil
}

// ConfirmSubtopics locks in the selection (possibly empty) and advances to
// preferences.
func (c *Controller) ConfirmSubtopics() error {
	if c.state.Stage != StageSubtopicSelection {
		return c.wrongStage(StageSubtopicSelection)
	}
	c.state.Stage = StagePreferences
	return nil
}

// QuestionCountOptions returns the valid question counts for the current
// subtopic selection.
func (c *Controller) QuestionCountOptions() []int {
	return QuestionCountOptions(len(c.state.SelectedSubtopics), c.optionConfig())
}

// SubmitPreferences validates the preferences and moves to generation,
// returning the generation effect to issue.
func (c *Controller) SubmitPreferences(numQuestions int, difficulty string, timerEnabled bool) (EffectGenerateQuiz, error) {
	if c.state.Stage != StagePreferences {
		return EffectGenerateQuiz{}, c.wrongStage(StagePreferences)
	}
	if !slices.Contains(c.QuestionCountOptions(), numQuestions) {
		return EffectGenerateQuiz{}, &ValidationError{Field: "question_count", Reason: fmt.Sprintf("%d is not a valid option", numQuestions)}
	}
	if !slices.Contains(config.Difficulties, difficulty) {
		return EffectGenerateQuiz{}, &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", difficulty)}
	}

	c.state.NumQuestions = numQuestions
	c.state.Difficulty = difficulty
	c.state.TimerEnabled = timerEnabled
	c.state.Stage = StageGenerating

	input := quizgen.GenerateInput{
		DocumentText:  c.state.DocumentText,
		DocumentName:  c.state.DocumentName,
		QuestionCount: numQuestions,
		Difficulty:    difficulty,
	}
	if len(c.state.SelectedSubtopics) > 0 {
		input.Mode = quizgen.ModeSubtopics
		input.Subtopics = slices.Clone(c.state.SelectedSubtopics)
	} else {
		input.Mode = quizgen.ModeDocument
	}
	return EffectGenerateQuiz{Epoch: c.epoch, Input: input}, nil
}

// ApplyGeneration delivers the generation result. On success the quiz goes
// active; on failure the wizard returns to preferences so the learner can
// adjust the request and retry.
func (c *Controller) ApplyGeneration(epoch int, questions []quizgen.Question, genErr error) error {
	if epoch != c.epoch {
		return ErrStale
	}
	if c.state.Stage != StageGenerating {
		return c.wrongStage(StageGenerating)
	}
	if genErr != nil {
		c.state.Stage = StagePreferences
		return genErr
	}
	c.state.Questions = slices.Clone(questions)
	c.state.Answers = make(map[string]int, len(questions))
	c.state.Stage = StageQuizActive
	return nil
}

// Answer records the learner's option pick for a question of the active quiz.
func (c *Controller) Answer(questionID string, optionIndex int) error {
	if c.state.Stage != StageQuizActive {
		return c.wrongStage(StageQuizActive)
	}
	for _, q := range c.state.Questions {
		if q.ID == questionID {
			if optionIndex < 0 || optionIndex >= len(q.Options) {
				return &ValidationError{Field: "answer", Reason: fmt.Sprintf("option %d out of range", optionIndex)}
			}
			c.state.Answers[questionID] = optionIndex
			return nil
		}
	}
	return &ValidationError{Field: "answer", Reason: fmt.Sprintf("unknown question %q", questionID)}
}

// Score counts correct answers on the active quiz.
func (c *Controller) Score() int {
	score := 0
	for _, q := range c.state.Questions {
		if idx, ok := c.state.Answers[q.ID]; ok && idx == q.CorrectIndex {
			score++
		}
	}
	return score
}

// TimerSeconds returns the total time allocated for the active quiz, or 0
// when the timer is disabled.
func (c *Controller) TimerSeconds() int {
	if !c.state.TimerEnabled {
		return 0
	}
	return c.cfg.SecondsPerQuestion * len(c.state.Questions)
}

// Back steps to the stage that led here. From preferences the wizard only
// returns to subtopic selection when subtopics were actually identified;
// with none found it returns to type selection (weak topics) or document
// upload (the other personalized types and quick).
func (c *Controller) Back() error {
	switch c.state.Stage {
	case StageCourseSelection:
		c.Reset()
	case StageTypeSelection:
		c.state.PersonalizedType = ""
		c.state.Stage = StageCourseSelection
	case StageFileUpload:
		if c.state.Mode == ModeQuick {
			c.Reset()
		} else {
			c.state.DocumentText = ""
			c.state.DocumentName = ""
			c.state.Stage = StageTypeSelection
		}
	case StageSubtopicSelection:
		if c.state.PersonalizedType == TypeWeakTopics {
			c.state.IdentifiedSubtopics = nil
			c.state.SelectedSubtopics = nil
			c.state.Stage = StageTypeSelection
		} else {
			c.state.IdentifiedSubtopics = nil
			c.state.SelectedSubtopics = nil
			c.state.Stage = StageFileUpload
		}
	case StagePreferences:
		switch {
		case len(c.state.IdentifiedSubtopics) > 0:
			c.state.Stage = StageSubtopicSelection
		case c.state.PersonalizedType == TypeWeakTopics:
			c.state.Stage = StageTypeSelection
		default:
			c.state.Stage = StageFileUpload
		}
	default:
		return &ValidationError{Field: "stage", Reason: fmt.Sprintf("cannot go back from %s", c.state.Stage)}
	}
	return nil
}

func (c *Controller) wrongStage(want Stage) error {
	return &ValidationError{Field: "stage", Reason: fmt.Sprintf("operation requires %s, current stage is %s", want, c.state.Stage)}
}

func (c *Controller) optionConfig() OptionConfig {
	return OptionConfig{
		MinQuestionsPerSubtopic: c.cfg.MinQuestionsPerSubtopic,
		MinSubtopicsForOptions:  c.cfg.MinSubtopicsForOptions,
		MaxSubtopicsForOptions:  c.cfg.MaxSubtopicsForOptions,
		MinQuestionsForQuiz:     c.cfg.MinQuestionsForQuiz,
		MaxQuestionsForQuiz:     c.cfg.MaxQuestionsForQuiz,
	}
}

// snapToOptions keeps the selected count inside the current option set.
func (c *Controller) snapToOptions() {
	c.state.NumQuestions = SnapCount(c.state.NumQuestions, c.QuestionCountOptions())
}
