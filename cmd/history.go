package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List a profile's saved quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		quizzes, err := s.Quizzes().ForOwner(context.Background(), profile.ID)
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}
		if len(quizzes) == 0 {
			fmt.Println("No quizzes saved yet.")
			return nil
		}
		if limit > 0 && len(quizzes) > limit {
			quizzes = quizzes[:limit]
		}

		fmt.Printf("%-19s  %-7s  %-26s  %-8s  %s\n", "Saved", "Score", "Type", "Difficulty", "Timer")
		fmt.Println(strings.Repeat("─", 80))
		for _, q := range quizzes {
			label := "quick"
			if q.QuizType == store.QuizTypePersonalized {
				label = "personalized"
				if q.PersonalizedType != "" {
					label += "/" + q.PersonalizedType
				}
			}
			timer := "off"
			if q.TimerEnabled {
				timer = fmt.Sprintf("%ds", q.TotalTimeAllocated)
			}
			fmt.Printf("%-19s  %3d/%-3d  %-26s  %-8s  %s\n",
				q.SavedAt.Local().Format("2006-01-02 15:04:05"),
				q.Score, q.TotalQuestions,
				truncate(label, 26),
				q.Difficulty,
				timer,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
}
