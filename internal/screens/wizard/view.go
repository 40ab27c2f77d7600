package wizard

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
	"github.com/abhisek/quizforge/internal/workflow"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

func (s *WizardScreen) View(width, height int) string {
	var content string
	switch s.controller.State().Stage {
	case workflow.StageCourseSelection:
		content = s.viewCourseSelection()
	case workflow.StageTypeSelection:
		content = s.viewTypeSelection()
	case workflow.StageFileUpload:
		content = s.viewFileUpload()
	case workflow.StageSubtopicSelection:
		content = s.viewSubtopicSelection()
	case workflow.StagePreferences:
		content = s.viewPreferences()
	case workflow.StageGenerating:
		content = s.viewGenerating()
	default:
		content = theme.Hint.Render("Nothing in progress.")
	}

	if s.errMsg != "" {
		content += "\n\n" + theme.InlineError.Render(s.errMsg)
	} else if s.notice != "" {
		content += "\n\n" + theme.InlineNotice.Render(s.notice)
	}
	return layout.Centered(content, width, height)
}

func (s *WizardScreen) viewCourseSelection() string {
	title := theme.Title.Render("Which course is this for?")
	if !s.courseLoaded {
		return lipgloss.JoinVertical(lipgloss.Center, title, "", theme.Hint.Render("Loading courses..."))
	}
	if s.creatingNew {
		card := theme.Card.Width(48).Render(s.newCourseName.View())
		return lipgloss.JoinVertical(lipgloss.Center, title, "", card)
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, "", s.courseMenu.View())
}

func (s *WizardScreen) viewTypeSelection() string {
	title := theme.Title.Render("What kind of quiz?")
	if s.busy {
		return lipgloss.JoinVertical(lipgloss.Center, title, "", theme.Hint.Render("Loading objectives..."))
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, "", s.typeMenu.View())
}

func (s *WizardScreen) viewFileUpload() string {
	title := theme.Title.Render("Pick a document")
	sub := theme.Subtitle.Render("Plain text or markdown")
	if s.extracting {
		return lipgloss.JoinVertical(lipgloss.Center, title, "", theme.Hint.Render("Identifying subtopics..."))
	}
	card := theme.Card.Width(60).Render(s.pathInput.View())
	return lipgloss.JoinVertical(lipgloss.Center, title, sub, "", card)
}

func (s *WizardScreen) viewSubtopicSelection() string {
	title := theme.Title.Render("Which subtopics should the quiz cover?")
	if len(s.checklist.Items) == 0 {
		empty := theme.Hint.Render("No subtopics available. Press Enter to continue with the whole selection empty.")
		return lipgloss.JoinVertical(lipgloss.Center, title, "", empty)
	}
	count := len(s.checklist.Selected())
	sub := theme.Subtitle.Render(strconv.Itoa(count) + " of " + strconv.Itoa(len(s.checklist.Items)) + " selected")
	return lipgloss.JoinVertical(lipgloss.Center, title, sub, "", s.checklist.View())
}

func (s *WizardScreen) viewPreferences() string {
	title := theme.Title.Render("Quiz preferences")

	timer := "off"
	if s.timerEnabled {
		secs := s.cfg.SecondsPerQuestion * atoi(s.countPicker.Value())
		timer = "on (" + formatDuration(secs) + ")"
	}
	timerLabel := theme.Body.Render("Timer")
	if s.prefFocus == 2 {
		timerLabel = theme.Selected.Render("Timer")
	}

	rows := []string{
		s.countPicker.View(s.prefFocus == 0),
		s.difficultyPicker.View(s.prefFocus == 1),
		timerLabel + "  " + theme.Body.Render(timer),
	}
	card := theme.Card.Width(60).Render(strings.Join(rows, "\n\n"))
	return lipgloss.JoinVertical(lipgloss.Center, title, "", card)
}

func (s *WizardScreen) viewGenerating() string {
	frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
	title := theme.Title.Render("Generating your quiz")
	st := s.controller.State()
	sub := theme.Subtitle.Render(strconv.Itoa(st.NumQuestions) + " questions, " + st.Difficulty)
	return lipgloss.JoinVertical(lipgloss.Center, title, sub, "", theme.Body.Render(frame))
}

func formatDuration(totalSeconds int) string {
	m := totalSeconds / 60
	sec := totalSeconds % 60
	if m == 0 {
		return strconv.Itoa(sec) + "s"
	}
	if sec == 0 {
		return strconv.Itoa(m) + "m"
	}
	return strconv.Itoa(m) + "m" + strconv.Itoa(sec) + "s"
}

func itoa(v int) string { return strconv.Itoa(v) }

func atoi(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
