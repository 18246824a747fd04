package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/card"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect and validate decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the builtin deck",
	Run: func(cmd *cobra.Command, args []string) {
		deck := card.BuiltinDutch()
		sentences, vocab, grammar := 0, 0, 0
		for _, c := range deck {
			switch c.Type {
			case card.TypeSentence:
				sentences++
			case card.TypeVocab:
				vocab++
			case card.TypeGrammar:
				grammar++
			}
		}
		fmt.Printf("Builtin deck: %d cards (%d sentences, %d vocab, %d grammar)\n",
			len(deck), sentences, vocab, grammar)
		for _, c := range deck {
			fmt.Printf("  %-10s %-8s %s\n", c.ID, c.Type, c.Prompt)
		}
	},
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate deck files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			cards, err := card.LoadFile(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d cards OK\n", path, len(cards))
		}
		return nil
	},
}

func init() {
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckValidateCmd)
}
