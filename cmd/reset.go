package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner data for a profile",
	Long:  "Deletes the profile's courses, learning objectives, and saved quizzes. The profile itself is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := resolveProfile(cmd, s)
		if err != nil {
			return err
		}

		if !force {
			fmt.Printf("This deletes all courses, objectives, and quiz history for %q. Type the profile name to confirm: ", profile.Name)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != profile.Name {
				fmt.Println("Aborted.")
				return nil
			}
		}

		db := s.DB().WithContext(cmd.Context())
		for _, model := range []any{&store.SavedQuiz{}, &store.LearningObjective{}, &store.Course{}} {
			if err := db.Where("owner_id = ?", profile.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}

		fmt.Printf("Learner data for %q deleted.\n", profile.Name)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
