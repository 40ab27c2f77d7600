// Package wizard drives the quiz-creation flow: course and type selection,
// document upload, subtopic selection and preferences, ending in quiz
// generation. The screen renders whatever stage the workflow controller is
// on; all sequencing decisions live in the controller.
package wizard

import (
	"context"
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/document"
	"github.com/abhisek/quizforge/internal/extract"
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/workflow"
)

// WizardScreen hosts every wizard stage before the quiz itself.
type WizardScreen struct {
	controller *workflow.Controller
	cfg        config.Quiz
	session    auth.Session

	courses    store.CourseRepo
	objectives store.ObjectiveRepo
	extractor  extract.Extractor
	generator  quizgen.Generator

	// course selection
	courseList    []store.Course
	courseMenu    components.Menu
	courseLoaded  bool
	creatingNew   bool
	newCourseName components.TextInput

	// type selection
	typeMenu components.Menu

	// existing objective names for the course, for the weak-topics pool
	// and the comprehensive union
	weakNames []string
	allNames  []string

	// file upload
	pathInput components.TextInput
	extracting bool

	// subtopic selection
	checklist components.CheckList

	// preferences
	countPicker      components.Picker
	difficultyPicker components.Picker
	timerEnabled     bool
	prefFocus        int

	// generating
	spinnerFrame int

	busy   bool
	errMsg string
	notice string
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)

// New creates the wizard for one run. mode decides whether course and type
// selection are part of the flow.
func New(
	controller *workflow.Controller,
	cfg config.Quiz,
	session auth.Session,
	courses store.CourseRepo,
	objectives store.ObjectiveRepo,
	extractor extract.Extractor,
	generator quizgen.Generator,
) *WizardScreen {
	s := &WizardScreen{
		controller: controller,
		cfg:        cfg,
		session:    session,
		courses:    courses,
		objectives: objectives,
		extractor:  extractor,
		generator:  generator,
		pathInput:  components.NewTextInput("Document path", "notes.md", false, 256),
	}
	s.newCourseName = components.NewTextInput("Course name", "e.g. Biology", false, 64)
	s.difficultyPicker = components.NewPicker("Difficulty", config.Difficulties)
	s.difficultyPicker.Select(cfg.DefaultDifficulty)
	return s
}

func (s *WizardScreen) Init() tea.Cmd {
	switch s.controller.State().Stage {
	case workflow.StageCourseSelection:
		return s.loadCourses()
	case workflow.StageFileUpload:
		return s.pathInput.Focus()
	}
	return nil
}

func (s *WizardScreen) Title() string {
	switch s.controller.State().Stage {
	case workflow.StageCourseSelection:
		return "Choose Course"
	case workflow.StageTypeSelection:
		return "Quiz Type"
	case workflow.StageFileUpload:
		return "Upload Document"
	case workflow.StageSubtopicSelection:
		return "Select Subtopics"
	case workflow.StagePreferences:
		return "Preferences"
	case workflow.StageGenerating:
		return "Generating"
	}
	return "New Quiz"
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	switch s.controller.State().Stage {
	case workflow.StageSubtopicSelection:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "A", Description: "Toggle all"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	case workflow.StagePreferences:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next setting"},
			{Key: "Left/Right", Description: "Adjust"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case workflow.StageGenerating:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		return s.handleCoursesLoaded(msg)
	case courseCreatedMsg:
		return s.handleCourseCreated(msg)
	case objectivesLoadedMsg:
		return s.handleObjectivesLoaded(msg)
	case documentLoadedMsg:
		return s.handleDocumentLoaded(msg)
	case subtopicsExtractedMsg:
		return s.handleSubtopicsExtracted(msg)
	case quizGeneratedMsg:
		return s.handleQuizGenerated(msg)
	case spinnerTickMsg:
		if s.controller.State().Stage == workflow.StageGenerating {
			s.spinnerFrame++
			return s, s.spinnerTick()
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			if s.creatingNew {
				// Cancel the inline course input without leaving the stage.
				s.creatingNew = false
				s.errMsg = ""
				s.newCourseName.SetValue("")
				return s, nil
			}
			return s.handleBack()
		}
	}

	switch s.controller.State().Stage {
	case workflow.StageCourseSelection:
		return s.updateCourseSelection(msg)
	case workflow.StageTypeSelection:
		return s.updateTypeSelection(msg)
	case workflow.StageFileUpload:
		return s.updateFileUpload(msg)
	case workflow.StageSubtopicSelection:
		return s.updateSubtopicSelection(msg)
	case workflow.StagePreferences:
		return s.updatePreferences(msg)
	}
	return s, nil
}

// handleBack steps the controller back and mirrors the move in the router.
func (s *WizardScreen) handleBack() (screen.Screen, tea.Cmd) {
	if s.busy || s.extracting {
		return s, nil
	}
	s.errMsg = ""
	s.notice = ""
	if err := s.controller.Back(); err != nil {
		return s, nil
	}
	stage := s.controller.State().Stage
	if stage == workflow.StageInitial {
		return s, func() tea.Msg { return router.ResetMsg{} }
	}
	return s, s.enterStage(stage)
}

// enterStage emits the router transition for a controller stage and runs
// any entry work the stage needs.
func (s *WizardScreen) enterStage(stage workflow.Stage) tea.Cmd {
	var entry tea.Cmd
	switch stage {
	case workflow.StageCourseSelection:
		if !s.courseLoaded {
			entry = s.loadCourses()
		}
	case workflow.StageFileUpload:
		entry = s.pathInput.Focus()
	case workflow.StageSubtopicSelection:
		s.syncChecklist()
	case workflow.StagePreferences:
		s.syncPreferences()
	case workflow.StageGenerating:
		entry = s.spinnerTick()
	}

	nav := func() tea.Msg { return router.NavigateMsg{To: routeFor(stage)} }
	if entry == nil {
		return nav
	}
	return tea.Batch(nav, entry)
}

func routeFor(stage workflow.Stage) router.State {
	switch stage {
	case workflow.StageCourseSelection:
		return router.StateCourseSelect
	case workflow.StageTypeSelection:
		return router.StateTypeSelect
	case workflow.StageFileUpload:
		return router.StateUpload
	case workflow.StageSubtopicSelection:
		return router.StateSubtopics
	case workflow.StagePreferences:
		return router.StatePreferences
	case workflow.StageGenerating:
		return router.StateGenerating
	}
	return router.StateDashboard
}

// ---- course selection ----

func (s *WizardScreen) loadCourses() tea.Cmd {
	ownerID := s.session.ProfileID
	return func() tea.Msg {
		courses, err := s.courses.List(context.Background(), ownerID)
		return coursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *WizardScreen) handleCoursesLoaded(msg coursesLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.courseList = msg.Courses
	s.courseLoaded = true
	s.buildCourseMenu()
	return s, nil
}

func (s *WizardScreen) buildCourseMenu() {
	items := make([]components.MenuItem, 0, len(s.courseList)+1)
	for _, c := range s.courseList {
		course := c
		items = append(items, components.MenuItem{
			Label: course.Name,
			Action: func() tea.Cmd {
				return s.pickCourse(course.ID, course.Name)
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "New course...",
		Action: func() tea.Cmd {
			s.creatingNew = true
			return s.newCourseName.Focus()
		},
	})
	s.courseMenu = components.NewMenu(items)
}

func (s *WizardScreen) pickCourse(id, name string) tea.Cmd {
	if err := s.controller.SelectCourse(id, name); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.buildTypeMenu()
	return s.enterStage(workflow.StageTypeSelection)
}

func (s *WizardScreen) updateCourseSelection(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.creatingNew {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			name := s.newCourseName.Value()
			if name == "" {
				s.errMsg = "course name is required"
				return s, nil
			}
			s.busy = true
			ownerID := s.session.ProfileID
			return s, func() tea.Msg {
				course, err := s.courses.Create(context.Background(), name, ownerID)
				if err != nil {
					return courseCreatedMsg{Err: err}
				}
				return courseCreatedMsg{Course: *course}
			}
		}
		var cmd tea.Cmd
		s.newCourseName, cmd = s.newCourseName.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.courseMenu, cmd = s.courseMenu.Update(msg)
	return s, cmd
}

func (s *WizardScreen) handleCourseCreated(msg courseCreatedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.creatingNew = false
	return s, s.pickCourse(msg.Course.ID, msg.Course.Name)
}

// ---- type selection ----

func (s *WizardScreen) buildTypeMenu() {
	s.typeMenu = components.NewMenu([]components.MenuItem{
		{
			Label:  "Comprehensive",
			Hint:   "whole course, document plus weak areas",
			Action: func() tea.Cmd { return s.pickType(store.PersonalizedComprehensive) },
		},
		{
			Label:  "New Topics",
			Hint:   "just the uploaded document",
			Action: func() tea.Cmd { return s.pickType(store.PersonalizedNewTopics) },
		},
		{
			Label:  "Weak Topics",
			Hint:   "existing weak objectives, no document",
			Action: func() tea.Cmd { return s.pickType(store.PersonalizedWeakTopics) },
		},
	})
}

// pickType loads the course's objectives first: weak topics become the
// selection pool, and comprehensive mode unions them with extraction later.
func (s *WizardScreen) pickType(picked string) tea.Cmd {
	s.busy = true
	ownerID := s.session.ProfileID
	courseID := s.controller.State().SelectedCourseID
	return func() tea.Msg {
		objs, err := s.objectives.ForOwner(context.Background(), ownerID, courseID)
		return objectivesLoadedMsg{PickedType: picked, Objectives: objs, Err: err}
	}
}

func (s *WizardScreen) handleObjectivesLoaded(msg objectivesLoadedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.weakNames = nil
	s.allNames = nil
	for _, o := range msg.Objectives {
		s.allNames = append(s.allNames, o.Name)
		if o.Status.Weak() {
			s.weakNames = append(s.weakNames, o.Name)
		}
	}

	var t workflow.PersonalizedType
	switch msg.PickedType {
	case store.PersonalizedWeakTopics:
		t = workflow.TypeWeakTopics
	case store.PersonalizedNewTopics:
		t = workflow.TypeNewTopics
	default:
		t = workflow.TypeComprehensive
	}

	if err := s.controller.SelectType(t, s.weakNames); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if t == workflow.TypeWeakTopics && len(s.weakNames) == 0 {
		s.notice = "No weak objectives recorded for this course yet."
	}
	return s, s.enterStage(s.controller.State().Stage)
}

func (s *WizardScreen) updateTypeSelection(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.typeMenu, cmd = s.typeMenu.Update(msg)
	return s, cmd
}

// ---- file upload ----

func (s *WizardScreen) updateFileUpload(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.extracting {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		path := s.pathInput.Value()
		if path == "" {
			s.errMsg = "enter a file path"
			return s, nil
		}
		s.errMsg = ""
		maxBytes := int64(s.cfg.MaxDocumentBytes)
		return s, func() tea.Msg {
			doc, err := document.Load(path, maxBytes)
			return documentLoadedMsg{Name: doc.Name, Text: doc.Text, Err: err}
		}
	}

	var cmd tea.Cmd
	s.pathInput, cmd = s.pathInput.Update(msg)
	return s, cmd
}

func (s *WizardScreen) handleDocumentLoaded(msg documentLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	eff, err := s.controller.SetDocument(msg.Name, msg.Text)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.extracting = true
	extractor := s.extractor
	text := eff.DocumentText
	epoch := eff.Epoch
	return s, func() tea.Msg {
		subtopics, err := extractor.Extract(context.Background(), text)
		return subtopicsExtractedMsg{Epoch: epoch, Subtopics: subtopics, Err: err}
	}
}

func (s *WizardScreen) handleSubtopicsExtracted(msg subtopicsExtractedMsg) (screen.Screen, tea.Cmd) {
	s.extracting = false

	subtopics := msg.Subtopics
	if msg.Err != nil {
		// Extraction failure degrades to zero subtopics; the quiz is
		// generated from the whole document instead.
		subtopics = nil
		s.notice = "Could not identify subtopics; the quiz will cover the whole document."
	}

	if s.controller.State().PersonalizedType == workflow.TypeComprehensive {
		subtopics = unionNames(subtopics, s.weakNames)
	}

	err := s.controller.ApplySubtopics(msg.Epoch, subtopics)
	if errors.Is(err, workflow.ErrStale) {
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.enterStage(s.controller.State().Stage)
}

// unionNames merges the two lists, keeping order and dropping exact
// duplicates. Names match by case-sensitive equality.
func unionNames(a, b []string) []string {
	out := slices.Clone(a)
	for _, name := range b {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// ---- subtopic selection ----

func (s *WizardScreen) syncChecklist() {
	st := s.controller.State()
	s.checklist = components.NewCheckList(st.IdentifiedSubtopics)
	for i, item := range s.checklist.Items {
		s.checklist.Checked[i] = slices.Contains(st.SelectedSubtopics, item)
	}
}

func (s *WizardScreen) updateSubtopicSelection(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if err := s.controller.SetSelectedSubtopics(s.checklist.Selected()); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		if err := s.controller.ConfirmSubtopics(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.enterStage(workflow.StagePreferences)
	}

	var cmd tea.Cmd
	s.checklist, cmd = s.checklist.Update(msg)
	return s, cmd
}

// ---- preferences ----

func (s *WizardScreen) syncPreferences() {
	options := s.controller.QuestionCountOptions()
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = itoa(o)
	}
	s.countPicker = components.NewPicker("Questions", labels)
	s.countPicker.Select(itoa(s.controller.State().NumQuestions))
	s.difficultyPicker.Select(s.controller.State().Difficulty)
	s.prefFocus = 0
}

func (s *WizardScreen) updatePreferences(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "shift+tab", "up", "down":
		s.prefFocus = (s.prefFocus + 1) % 3
		return s, nil
	case " ", "space":
		if s.prefFocus == 2 {
			s.timerEnabled = !s.timerEnabled
		}
		return s, nil
	case "enter":
		return s.submitPreferences()
	}

	switch s.prefFocus {
	case 0:
		s.countPicker, _ = s.countPicker.Update(msg)
	case 1:
		s.difficultyPicker, _ = s.difficultyPicker.Update(msg)
	case 2:
		if key := kmsg.String(); key == "left" || key == "right" || key == "h" || key == "l" {
			s.timerEnabled = !s.timerEnabled
		}
	}
	return s, nil
}

func (s *WizardScreen) submitPreferences() (screen.Screen, tea.Cmd) {
	count := atoi(s.countPicker.Value())
	eff, err := s.controller.SubmitPreferences(count, s.difficultyPicker.Value(), s.timerEnabled)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""

	generator := s.generator
	input := eff.Input
	epoch := eff.Epoch
	gen := func() tea.Msg {
		questions, err := generator.Generate(context.Background(), input)
		return quizGeneratedMsg{Epoch: epoch, Questions: questions, Err: err}
	}
	return s, tea.Batch(s.enterStage(workflow.StageGenerating), gen)
}

func (s *WizardScreen) handleQuizGenerated(msg quizGeneratedMsg) (screen.Screen, tea.Cmd) {
	err := s.controller.ApplyGeneration(msg.Epoch, msg.Questions, msg.Err)
	if errors.Is(err, workflow.ErrStale) {
		return s, nil
	}
	if err != nil {
		// Generation failed; the controller is back on preferences so the
		// learner can adjust and retry.
		s.errMsg = "Generation failed: " + err.Error()
		return s, s.enterStage(workflow.StagePreferences)
	}
	return s, tea.Batch(
		func() tea.Msg { return router.NavigateMsg{To: router.StateQuizActive} },
		func() tea.Msg { return QuizReadyMsg{} },
	)
}

func (s *WizardScreen) spinnerTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
