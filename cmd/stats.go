package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/engine"
	"github.com/abhisek/lexiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lang := resolveLang(cmd)

		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		e := engine.New(engine.Config{
			Store: store.NewProfileStore(dataDir),
			Lang:  lang,
			Deck:  card.BuiltinDutch(),
		})
		st := e.Status()
		p := e.Profile()

		fmt.Printf("Language:   %s\n", st.Lang)
		fmt.Printf("Level:      %s (score %.2f, confidence %.0f%%)\n",
			st.Ability.Estimate, st.Ability.Score, st.Ability.Confidence*100)
		fmt.Printf("Streak:     %d days\n", st.StreakDays)
		fmt.Printf("Due now:    %d cards\n", st.DueCount)
		fmt.Printf("Unseen:     %d cards\n", st.NewCount)
		fmt.Printf("New/day:    %d (advisory)\n", p.Settings.DailyNewCardsTarget)
		if p.Stats.TotalAttempts > 0 {
			pct := float64(p.Stats.CorrectAttempts) / float64(p.Stats.TotalAttempts) * 100
			fmt.Printf("Accuracy:   %d/%d (%.0f%%)\n", p.Stats.CorrectAttempts, p.Stats.TotalAttempts, pct)
		}
		if p.Stats.AvgLatencyMs7d > 0 {
			fmt.Printf("Avg answer: %.1fs\n", p.Stats.AvgLatencyMs7d/1000)
		}

		if len(p.Ability.Subskills) > 0 {
			fmt.Println("\nSkills:")
			for skill, s := range p.Ability.Subskills {
				fmt.Printf("  %-24s %.2f (%d attempts)\n", skill, s.Score, s.Samples)
			}
		}

		attempts, err := store.OpenAttemptLog(filepath.Join(dataDir, "lexiz.db"))
		if err != nil {
			return nil
		}
		defer attempts.Close()

		recent, err := attempts.Recent(ctx, lang, 5)
		if err != nil || len(recent) == 0 {
			return nil
		}
		fmt.Println("\nRecent attempts:")
		for _, rec := range recent {
			mark := "✗"
			if rec.Correct {
				mark = "✓"
			}
			fmt.Printf("  %s [%s] %s\n", mark, rec.Variant, rec.Prompt)
		}
		return nil
	},
}
