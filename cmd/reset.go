package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored result, profile, deck and log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Xoá toàn bộ dữ liệu? Gõ \"yes\" để xác nhận: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Đã huỷ.")
				return nil
			}
		}

		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.sqlite.Reset(ctx); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
		if b.redis != nil {
			if err := b.redis.Reset(ctx); err != nil {
				return fmt.Errorf("reset redis: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Đã xoá toàn bộ dữ liệu.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
