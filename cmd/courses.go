package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage courses from the command line",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a profile's courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		courses, err := s.Courses().List(context.Background(), profile.ID)
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %s\n", "ID", "Created", "Name")
		fmt.Println(strings.Repeat("─", 80))
		for _, c := range courses {
			fmt.Printf("%-36s  %-19s  %s\n",
				c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04:05"), c.Name)
		}
		return nil
	},
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		course, err := s.Courses().Create(context.Background(), args[0], profile.ID)
		if err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		fmt.Printf("Created course %q (%s)\n", course.Name, course.ID)
		return nil
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course, keeping its objectives and quiz history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		if err := s.Courses().Delete(context.Background(), args[0], profile.ID); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		fmt.Println("Course deleted. Objectives and saved quizzes were kept.")
		return nil
	},
}

func init() {
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
}
