package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexiz",
	Short: "Adaptive language drills in your terminal",
	Long:  "Lexiz — spaced-repetition language practice with adaptive questions and optional AI grading.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Data directory (overrides LEXIZ_DATA env var)")
	rootCmd.PersistentFlags().String("lang", "nl", "Language to practice")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Optional; missing .env files are fine.
		_ = godotenv.Load()
		if dir, err := resolveDataDir(cmd); err == nil {
			_ = godotenv.Load(filepath.Join(dir, ".env"))
		}
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(judgeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data (highest
// priority), then LEXIZ_DATA, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}
	return store.DefaultDataDir()
}

func resolveLang(cmd *cobra.Command) string {
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = "nl"
	}
	return lang
}
