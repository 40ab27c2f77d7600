package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var objectivesCmd = &cobra.Command{
	Use:   "objectives",
	Short: "List a profile's learning objectives and their mastery status",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		items, err := s.Objectives().ForOwner(context.Background(), profile.ID, courseID)
		if err != nil {
			return fmt.Errorf("list objectives: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No learning objectives yet. Personalized quizzes build this list.")
			return nil
		}

		fmt.Printf("%-14s  %-24s  %-19s  %s\n", "Status", "Course", "Updated", "Objective")
		fmt.Println(strings.Repeat("─", 90))
		for _, o := range items {
			course := o.CourseName
			if course == "" {
				course = "-"
			}
			fmt.Printf("%-14s  %-24s  %-19s  %s\n",
				o.Status,
				truncate(course, 24),
				o.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				o.Name,
			)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	objectivesCmd.Flags().String("course", "", "Filter by course ID")
}
