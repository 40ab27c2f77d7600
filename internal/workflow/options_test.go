package workflow

import (
	"reflect"
	"testing"
)

func testOptionConfig() OptionConfig {
	return OptionConfig{
		MinQuestionsPerSubtopic: 2,
		MinSubtopicsForOptions:  3,
		MaxSubtopicsForOptions:  10,
		MinQuestionsForQuiz:     3,
		MaxQuestionsForQuiz:     20,
	}
}

func TestQuestionCountOptions(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want []int
	}{
		{name: "no subtopics", n: 0, want: []int{6, 8, 10, 12, 14, 16, 18, 20}},
		{name: "one subtopic", n: 1, want: []int{6, 8, 10, 12, 14, 16, 18, 20}},
		{name: "four subtopics raises floor", n: 4, want: []int{8, 10, 12, 14, 16, 18, 20}},
		{name: "nine subtopics", n: 9, want: []int{18, 20}},
		{name: "ten subtopics hits the cap", n: 10, want: []int{20}},
	}
	cfg := testOptionConfig()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := QuestionCountOptions(tc.n, cfg)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("n=%d: got %v, want %v", tc.n, got, tc.want)
			}
		})
	}
}

func TestQuestionCountOptions_FloorAboveMax(t *testing.T) {
	got := QuestionCountOptions(15, testOptionConfig())
	if !reflect.DeepEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
}

func TestQuestionCountOptions_Fallback(t *testing.T) {
	// A narrow candidate window forces the 3-point fallback.
	cfg := OptionConfig{
		MinQuestionsPerSubtopic: 2,
		MinSubtopicsForOptions:  8,
		MaxSubtopicsForOptions:  9,
		MinQuestionsForQuiz:     3,
		MaxQuestionsForQuiz:     10,
	}
	// Candidates {16, 18} fall above M=10, floor=3.
	got := QuestionCountOptions(0, cfg)
	if !reflect.DeepEqual(got, []int{3, 5, 7}) {
		t.Errorf("got %v, want [3 5 7]", got)
	}
}

func TestQuestionCountOptions_FallbackClampedAndDeduped(t *testing.T) {
	cfg := OptionConfig{
		MinQuestionsPerSubtopic: 4,
		MinSubtopicsForOptions:  5,
		MaxSubtopicsForOptions:  6,
		MinQuestionsForQuiz:     8,
		MaxQuestionsForQuiz:     10,
	}
	// floor=8, fallback {8, min(10,12), min(10,16)} = {8, 10, 10} deduped.
	got := QuestionCountOptions(0, cfg)
	if !reflect.DeepEqual(got, []int{8, 10}) {
		t.Errorf("got %v, want [8 10]", got)
	}
}

func TestSnapCount(t *testing.T) {
	options := []int{6, 8, 10, 12, 14, 16, 18, 20}
	cases := []struct {
		current int
		want    int
	}{
		{current: 7, want: 8}, // equidistant snaps up
		{current: 6, want: 6},
		{current: 3, want: 6},
		{current: 9, want: 10},
		{current: 25, want: 20},
		{current: 11, want: 12},
	}
	for _, tc := range cases {
		if got := SnapCount(tc.current, options); got != tc.want {
			t.Errorf("SnapCount(%d) = %d, want %d", tc.current, got, tc.want)
		}
	}
}
