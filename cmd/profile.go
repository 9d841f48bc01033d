package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the student profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		st, err := b.sqlite.ProfileRepo().Latest(cmd.Context())
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if st == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Chưa có hồ sơ. Dùng `laban profile set --name ...`.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Họ tên:  %s\nLớp:     %s\nTrường:  %s\n", st.Name, st.Class, st.School)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a new profile version; unset flags keep their saved value",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		st, err := resolveStudent(cmd, b)
		if err != nil {
			return err
		}
		if err := validateStudent(st); err != nil {
			return err
		}
		if err := b.sqlite.ProfileRepo().Save(cmd.Context(), st); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Đã lưu hồ sơ của %s.\n", st.Name)
		return nil
	},
}

// validateStudent applies the same limits as the HTTP API.
func validateStudent(st assessment.Student) error {
	switch {
	case st.Name == "":
		return errors.New("--name is required")
	case len([]rune(st.Name)) > 80:
		return errors.New("name must be at most 80 characters")
	case len([]rune(st.Class)) > 20:
		return errors.New("class must be at most 20 characters")
	case len([]rune(st.School)) > 120:
		return errors.New("school must be at most 120 characters")
	}
	return nil
}

func init() {
	profileSetCmd.Flags().String("name", "", "Student name")
	profileSetCmd.Flags().String("class", "", "Class, e.g. 10A1")
	profileSetCmd.Flags().String("school", "", "School")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
