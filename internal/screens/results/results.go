// Package results shows the completed quiz: score, per-question review,
// and the mastery changes a personalized quiz produced. It also persists
// the quiz record and runs the mastery update.
package results

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/mastery"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
	"github.com/abhisek/quizforge/internal/workflow"

	"gorm.io/datatypes"
)

// quizSavedMsg confirms the quiz record write.
type quizSavedMsg struct {
	Err error
}

// masteryAppliedMsg carries the mastery update outcome.
type masteryAppliedMsg struct {
	Result mastery.Result
	Err    error
}

// ResultsScreen is the quiz-completed view.
type ResultsScreen struct {
	controller *workflow.Controller
	quizzes    store.QuizRepo
	updater    *mastery.Updater
	session    auth.Session

	score int
	total int

	reviewing   bool
	reviewIndex int

	saved      bool
	saveErr    string
	masteryRes *mastery.Result
	masteryErr string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen and computes the final score.
func New(controller *workflow.Controller, quizzes store.QuizRepo, updater *mastery.Updater, session auth.Session) *ResultsScreen {
	st := controller.State()
	return &ResultsScreen{
		controller: controller,
		quizzes:    quizzes,
		updater:    updater,
		session:    session,
		score:      controller.Score(),
		total:      len(st.Questions),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return tea.Batch(s.saveQuiz(), s.applyMastery())
}

func (s *ResultsScreen) Title() string { return "Results" }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{
			{Key: "Left/Right", Description: "Question"},
			{Key: "Esc", Description: "Back to summary"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "R", Description: "Review answers"},
		{Key: "H", Description: "History"},
		{Key: "Enter", Description: "Dashboard"},
	}
	if s.saveErr != "" {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Retry save"})
	}
	if s.masteryErr != "" {
		hints = append(hints, layout.KeyHint{Key: "M", Description: "Retry mastery update"})
	}
	return hints
}

// quizInput assembles the persisted record from the workflow snapshot.
func (s *ResultsScreen) quizInput() store.SavedQuiz {
	st := s.controller.State()

	records := make([]store.QuestionRecord, len(st.Questions))
	for i, q := range st.Questions {
		records[i] = store.QuestionRecord{
			ID:           q.ID,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Subtopic:     q.Subtopic,
			Explanation:  q.Explanation,
		}
	}

	quizType := store.QuizTypeQuick
	var personalizedType string
	var courseID *string
	if st.Mode == workflow.ModePersonalized {
		quizType = store.QuizTypePersonalized
		personalizedType = string(st.PersonalizedType)
		id := st.SelectedCourseID
		courseID = &id
	}

	return store.SavedQuiz{
		OwnerID:            s.session.ProfileID,
		Questions:          datatypes.NewJSONType(records),
		Answers:            datatypes.NewJSONType(st.Answers),
		Score:              s.score,
		TotalQuestions:     s.total,
		QuizType:           quizType,
		CourseID:           courseID,
		Difficulty:         st.Difficulty,
		TimerEnabled:       st.TimerEnabled,
		TotalTimeAllocated: s.controller.TimerSeconds(),
		PersonalizedType:   personalizedType,
	}
}

func (s *ResultsScreen) saveQuiz() tea.Cmd {
	input := s.quizInput()
	repo := s.quizzes
	return func() tea.Msg {
		_, err := repo.Save(context.Background(), input)
		return quizSavedMsg{Err: err}
	}
}

func (s *ResultsScreen) applyMastery() tea.Cmd {
	st := s.controller.State()
	in := mastery.ApplyInput{
		OwnerID:            s.session.ProfileID,
		QuizType:           store.QuizTypeQuick,
		PersonalizedType:   string(st.PersonalizedType),
		CourseID:           st.SelectedCourseID,
		CourseName:         st.SelectedCourseName,
		SourceDocumentName: st.DocumentName,
		Questions:          st.Questions,
		Answers:            st.Answers,
	}
	if st.Mode == workflow.ModePersonalized {
		in.QuizType = store.QuizTypePersonalized
	}
	updater := s.updater
	return func() tea.Msg {
		res, err := updater.Apply(context.Background(), in)
		return masteryAppliedMsg{Result: res, Err: err}
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.saved = true
			s.saveErr = ""
		}
		return s, nil

	case masteryAppliedMsg:
		if msg.Err != nil {
			s.masteryErr = msg.Err.Error()
		} else {
			res := msg.Result
			s.masteryRes = &res
		}
		return s, nil

	case tea.KeyMsg:
		if s.reviewing {
			switch msg.String() {
			case "esc":
				s.reviewing = false
			case "left", "h":
				if s.reviewIndex > 0 {
					s.reviewIndex--
				}
			case "right", "l":
				if s.reviewIndex < s.total-1 {
					s.reviewIndex++
				}
			}
			return s, nil
		}

		switch msg.String() {
		case "r", "R":
			if s.total > 0 {
				s.reviewing = true
				s.reviewIndex = 0
			}
		case "s", "S":
			if s.saveErr != "" {
				s.saveErr = ""
				return s, s.saveQuiz()
			}
		case "m", "M":
			if s.masteryErr != "" {
				s.masteryErr = ""
				return s, s.applyMastery()
			}
		case "h", "H":
			return s, func() tea.Msg { return router.NavigateMsg{To: router.StateHistory} }
		case "enter", "esc":
			return s, func() tea.Msg { return router.ResetMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.reviewing {
		return s.viewReview(width, height)
	}
	return s.viewSummary(width, height)
}

func (s *ResultsScreen) viewSummary(width, height int) string {
	title := theme.Title.Render("Quiz complete!")

	pct := 0.0
	if s.total > 0 {
		pct = float64(s.score) / float64(s.total)
	}
	scoreStyle := theme.Correct
	if pct < 0.5 {
		scoreStyle = theme.Incorrect
	}
	score := scoreStyle.Render(itoa(s.score) + " / " + itoa(s.total))
	bar := components.NewProgressBar("", pct, true, 40)

	lines := []string{title, "", score, "", bar.View()}

	if s.masteryRes != nil && (s.masteryRes.Updated > 0 || s.masteryRes.Created > 0) {
		lines = append(lines, "", theme.InlineNotice.Render(
			"Objectives: "+itoa(s.masteryRes.Updated)+" updated, "+itoa(s.masteryRes.Created)+" new"))
	}
	if s.masteryErr != "" {
		lines = append(lines, "", theme.InlineError.Render("Mastery update failed: "+s.masteryErr))
	}
	switch {
	case s.saveErr != "":
		lines = append(lines, "", theme.InlineError.Render("Save failed: "+s.saveErr))
	case s.saved:
		lines = append(lines, "", theme.Hint.Render("Saved to history."))
	}

	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func (s *ResultsScreen) viewReview(width, height int) string {
	st := s.controller.State()
	q := st.Questions[s.reviewIndex]

	choice := components.NewAnswerChoice(q.Prompt, q.Options)
	choice.Revealed = true
	choice.CorrectIndex = q.CorrectIndex
	choice.Explanation = q.Explanation
	choice.ChosenIndex = -1
	if idx, ok := st.Answers[q.ID]; ok {
		choice.ChosenIndex = idx
	}

	header := theme.Subtitle.Render("Review " + itoa(s.reviewIndex+1) + " of " + itoa(s.total))
	card := theme.Card.Width(70).Render(choice.View())
	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, header, "", card), width, height)
}

func itoa(v int) string { return strconv.Itoa(v) }
