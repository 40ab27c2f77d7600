package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Quiz holds the tunable constants that drive quiz sizing and pacing.
// Values come from the config file when present, with env overrides
// (QUIZFORGE_* variables) and built-in defaults below that.
type Quiz struct {
	// DefaultQuestionCount is the preselected question count before the
	// user touches the count picker.
	DefaultQuestionCount int `mapstructure:"default_question_count"`

	// MinQuestionsPerSubtopic is the smallest number of questions that
	// makes a selected subtopic worth quizzing on.
	MinQuestionsPerSubtopic int `mapstructure:"min_questions_per_subtopic"`

	// MinSubtopicsForOptions / MaxSubtopicsForOptions bound the candidate
	// multipliers used when building the question-count option set.
	MinSubtopicsForOptions int `mapstructure:"min_subtopics_for_options"`
	MaxSubtopicsForOptions int `mapstructure:"max_subtopics_for_options"`

	// MinQuestionsForQuiz / MaxQuestionsForQuiz bound the total size of
	// any generated quiz.
	MinQuestionsForQuiz int `mapstructure:"min_questions_for_quiz"`
	MaxQuestionsForQuiz int `mapstructure:"max_questions_for_quiz"`

	// OptionCount is the number of answer options per question.
	OptionCount int `mapstructure:"option_count"`

	// DefaultDifficulty is the preselected difficulty in preferences.
	// One of "easy", "medium", "hard".
	DefaultDifficulty string `mapstructure:"default_difficulty"`

	// SecondsPerQuestion sets the timer budget for timed quizzes:
	// total time = SecondsPerQuestion * question count.
	SecondsPerQuestion int `mapstructure:"seconds_per_question"`

	// MaxSubtopics caps how many subtopics extraction may return.
	MaxSubtopics int `mapstructure:"max_subtopics"`

	// MaxDocumentBytes caps the size of an uploaded document.
	MaxDocumentBytes int `mapstructure:"max_document_bytes"`
}

// Config is the root application configuration.
type Config struct {
	Quiz  Quiz   `mapstructure:"quiz"`
	Debug bool   `mapstructure:"debug"`
	DB    string `mapstructure:"db"`
}

// ErrConfiguration indicates the configuration could not be loaded or is
// internally inconsistent. The app cannot start a quiz workflow without a
// valid configuration, so this is surfaced as a blocking error.
type ErrConfiguration struct {
	Reason string
	Err    error
}

func (e *ErrConfiguration) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration: %s", e.Reason)
}

func (e *ErrConfiguration) Unwrap() error { return e.Err }

// Difficulties are the accepted difficulty labels, in display order.
var Difficulties = []string{"easy", "medium", "hard"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("quiz.default_question_count", 10)
	v.SetDefault("quiz.min_questions_per_subtopic", 2)
	v.SetDefault("quiz.min_subtopics_for_options", 3)
	v.SetDefault("quiz.max_subtopics_for_options", 10)
	v.SetDefault("quiz.min_questions_for_quiz", 3)
	v.SetDefault("quiz.max_questions_for_quiz", 20)
	v.SetDefault("quiz.option_count", 4)
	v.SetDefault("quiz.default_difficulty", "medium")
	v.SetDefault("quiz.seconds_per_question", 45)
	v.SetDefault("quiz.max_subtopics", 15)
	v.SetDefault("quiz.max_document_bytes", 1<<20)
	v.SetDefault("debug", false)
}

// Load reads configuration from the XDG config dir (config.yaml), applies
// env overrides, validates, and returns the result. A missing config file
// is fine; a malformed one is not.
func Load() (Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return Config{}, &ErrConfiguration{Reason: "resolve config dir", Err: err}
	}
	return LoadFrom(dir)
}

// LoadFrom loads configuration from the given directory.
func LoadFrom(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("QUIZFORGE")
	v.AutomaticEnv()
	v.BindEnv("quiz.default_question_count", "QUIZFORGE_DEFAULT_QUESTION_COUNT")
	v.BindEnv("quiz.min_questions_per_subtopic", "QUIZFORGE_MIN_QUESTIONS_PER_SUBTOPIC")
	v.BindEnv("quiz.min_subtopics_for_options", "QUIZFORGE_MIN_SUBTOPICS_FOR_OPTIONS")
	v.BindEnv("quiz.max_subtopics_for_options", "QUIZFORGE_MAX_SUBTOPICS_FOR_OPTIONS")
	v.BindEnv("quiz.min_questions_for_quiz", "QUIZFORGE_MIN_QUESTIONS")
	v.BindEnv("quiz.max_questions_for_quiz", "QUIZFORGE_MAX_QUESTIONS")
	v.BindEnv("quiz.option_count", "QUIZFORGE_OPTION_COUNT")
	v.BindEnv("quiz.default_difficulty", "QUIZFORGE_DIFFICULTY")
	v.BindEnv("quiz.seconds_per_question", "QUIZFORGE_SECONDS_PER_QUESTION")
	v.BindEnv("debug", "QUIZFORGE_DEBUG")
	v.BindEnv("db", "QUIZFORGE_DB")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigNotFound(err, &notFound) {
			return Config{}, &ErrConfiguration{Reason: "read config file", Err: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &ErrConfiguration{Reason: "parse config", Err: err}
	}

	if err := cfg.Quiz.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks internal consistency of the quiz constants.
func (q Quiz) Validate() error {
	fail := func(reason string) error {
		return &ErrConfiguration{Reason: reason}
	}
	if q.MinQuestionsPerSubtopic < 1 {
		return fail("min_questions_per_subtopic must be >= 1")
	}
	if q.MinSubtopicsForOptions < 1 || q.MaxSubtopicsForOptions < q.MinSubtopicsForOptions {
		return fail("subtopic option bounds must satisfy 1 <= min <= max")
	}
	if q.MinQuestionsForQuiz < 1 || q.MaxQuestionsForQuiz < q.MinQuestionsForQuiz {
		return fail("question count bounds must satisfy 1 <= min <= max")
	}
	if q.OptionCount < 2 || q.OptionCount > 6 {
		return fail("option_count must be between 2 and 6")
	}
	if q.DefaultQuestionCount < q.MinQuestionsForQuiz || q.DefaultQuestionCount > q.MaxQuestionsForQuiz {
		return fail("default_question_count must be within the question count bounds")
	}
	switch q.DefaultDifficulty {
	case "easy", "medium", "hard":
	default:
		return fail("default_difficulty must be easy, medium or hard")
	}
	if q.SecondsPerQuestion < 5 {
		return fail("seconds_per_question must be >= 5")
	}
	if q.MaxSubtopics < 1 {
		return fail("max_subtopics must be >= 1")
	}
	if q.MaxDocumentBytes < 1 {
		return fail("max_document_bytes must be >= 1")
	}
	return nil
}

// DefaultConfigDir resolves the config directory:
// $XDG_CONFIG_HOME/quizforge, falling back to ~/.config/quizforge.
func DefaultConfigDir() (string, error) {
	if h := os.Getenv("XDG_CONFIG_HOME"); h != "" {
		return filepath.Join(h, "quizforge"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "quizforge"), nil
}

func asConfigNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}
