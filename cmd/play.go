package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/engine"
	"github.com/abhisek/lexiz/internal/judge"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().StringSlice("deck", nil, "Extra deck files to merge (JSON, repeatable)")
}

func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	lang := resolveLang(cmd)

	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	attempts, err := store.OpenAttemptLog(filepath.Join(dataDir, "lexiz.db"))
	if err != nil {
		return fmt.Errorf("open attempt log: %w", err)
	}
	defer attempts.Close()

	deck, err := buildDeck(cmd)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Store:    store.NewProfileStore(dataDir),
		Lang:     lang,
		Deck:     deck,
		Attempts: attempts,
	}

	// The judge is optional; without one every answer is graded locally.
	if j, ok := judge.NewFromEnv(ctx); ok {
		cfg.Judge = j
	} else {
		fmt.Fprintln(os.Stderr, "No judge provider configured; using strict grading only.")
	}

	return tui.Run(engine.New(cfg))
}

// buildDeck merges the builtin deck with any --deck files, builtin first
// so file decks can only add cards, never replace them.
func buildDeck(cmd *cobra.Command) ([]card.Card, error) {
	deck := card.BuiltinDutch()

	paths, _ := cmd.Flags().GetStringSlice("deck")
	for _, path := range paths {
		extra, err := card.LoadFile(path)
		if err != nil {
			return nil, err
		}
		deck = card.Merge(deck, extra)
	}
	return deck, nil
}
