package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/judge"
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Show the configured judge provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := judge.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := judge.DiscoverConfig()
			if !ok {
				fmt.Println("No judge provider configured.")
				fmt.Println("Set LEXIZ_JUDGE_PROVIDER and the matching API key,")
				fmt.Println("or export GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY.")
				return nil
			}
			cfg = discovered
		}

		j, err := judge.NewFromConfig(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("initialize judge: %w", err)
		}
		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Model:    %s\n", j.ModelID())
		fmt.Printf("Timeout:  %s\n", cfg.Timeout)
		return nil
	},
}
