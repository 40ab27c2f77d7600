package workflow

import "sort"

// OptionConfig holds the tunables for question-count option computation.
type OptionConfig struct {
	MinQuestionsPerSubtopic int // q
	MinSubtopicsForOptions  int // a
	MaxSubtopicsForOptions  int // b
	MinQuestionsForQuiz     int // m
	MaxQuestionsForQuiz     int // M
}

// QuestionCountOptions computes the valid question counts for n selected
// subtopics. The floor is the minimum sensible total given the selection;
// candidates are multiples of the per-subtopic minimum, clamped to the quiz
// bounds. The result is non-empty and sorted ascending.
func QuestionCountOptions(n int, cfg OptionConfig) []int {
	q := cfg.MinQuestionsPerSubtopic
	m := cfg.MinQuestionsForQuiz
	max := cfg.MaxQuestionsForQuiz

	floor := m
	if n*q > floor {
		floor = n * q
	}

	var options []int
	for k := cfg.MinSubtopicsForOptions; k <= cfg.MaxSubtopicsForOptions; k++ {
		c := k * q
		if c >= floor && c <= max {
			options = append(options, c)
		}
	}

	if len(options) == 0 {
		if floor > max {
			return []int{max}
		}
		// 3-point fallback around the floor.
		options = []int{floor}
		for _, c := range []int{floor + q, floor + 2*q} {
			if c > max {
				c = max
			}
			if options[len(options)-1] != c {
				options = append(options, c)
			}
		}
	}

	sort.Ints(options)
	return options
}

// SnapCount returns the member of options nearest to current, preferring the
// larger member on a tie. Options must be non-empty and sorted ascending.
func SnapCount(current int, options []int) int {
	best := options[0]
	bestDist := abs(current - best)
	for _, o := range options[1:] {
		d := abs(current - o)
		if d < bestDist || (d == bestDist && o > best) {
			best = o
			bestDist = d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
