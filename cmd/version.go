package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/assessment"
)

// version is set via -ldflags "-X github.com/abhisek/laban/cmd.version=…".
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build and question bank versions",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "laban %s (%s)\n", buildVersion(), runtime.Version())
		fmt.Fprintf(w, "question bank %s, %d instruments\n", assessment.BankVersion, len(assessment.Instruments()))
	},
}

// buildVersion prefers the ldflags value, then the module version recorded
// by `go install`, then "(devel)".
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
