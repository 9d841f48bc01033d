package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/config"
	"github.com/abhisek/laban/internal/store"
)

// cfg is filled in before any command runs.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "laban",
	Short: "Aptitude passport for Vietnamese high-school students",
	Long: `Laban — hộ chiếu năng lực cho học sinh THPT.

Take the MBTI, Holland, IQ, EQ and DISC instruments, collect the results
as passport pages, and use the AI study tools and career guidance.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LABAN_DB env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for results and interaction logs (overrides LABAN_REDIS_URL)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file to load")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the dotenv file and environment, then applies flag
// overrides and installs the logger.
func loadConfig(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("redis"); u != "" {
		c.RedisURL = u
	}
	cfg = c
	cfg.InstallLogger()
	return nil
}

// resolveDBPath returns the database path using --db / LABAN_DB, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
