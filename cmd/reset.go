package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile for a language",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := resolveLang(cmd)

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("This deletes all progress for %q. Re-run with --yes to confirm.\n", lang)
			return nil
		}

		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		path := filepath.Join(dataDir, "profiles", lang+".json")
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No profile for %q.\n", lang)
				return nil
			}
			return fmt.Errorf("remove profile: %w", err)
		}
		fmt.Printf("Profile for %q deleted.\n", lang)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip confirmation")
}
