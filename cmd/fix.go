package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/fixer"
	"github.com/dotcommander/mplint/internal/manifest"
	"github.com/dotcommander/mplint/internal/tui"
	"github.com/dotcommander/mplint/internal/validate"
)

var (
	fixYes      bool
	fixDiff     bool
	fixNoBackup bool
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Remove dangling references from the manifest",
	Long: `The fix command removes every reference the validator reports as missing
from the manifest, writes a backup of the original alongside it, rewrites
the manifest as pretty-printed JSON, and re-validates.

Without --yes an interactive picker lets you choose which references to
remove. Use --diff to preview the rewrite without touching the file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFix(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolVarP(&fixYes, "yes", "y", false, "Remove all dangling references without prompting")
	fixCmd.Flags().BoolVar(&fixDiff, "diff", false, "Show what would change without writing")
	fixCmd.Flags().BoolVar(&fixNoBackup, "no-backup", false, "Skip writing the .backup copy")
}

func runFix() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	root, manifestFile, err := resolveTargets(cfg)
	if err != nil {
		return err
	}

	result := validate.New().ValidateFile(manifestFile, root)
	if result.Valid {
		if !cfg.Quiet {
			fmt.Println("Nothing to fix: all references valid")
		}
		return nil
	}

	// A manifest that could not be read or parsed cannot be fixed here.
	if result.ValidatedPlugins == 0 && len(result.Errors) == 1 && result.Errors[0].Field == "" {
		return fmt.Errorf("%s", result.Errors[0].Message)
	}

	toRemove := result.Errors
	if !fixYes && !fixDiff {
		chosen, confirmed, err := tui.PickReferences(result.Errors)
		if err != nil {
			return err
		}
		if !confirmed {
			if !cfg.Quiet {
				fmt.Println("Cancelled, manifest unchanged")
			}
			return nil
		}
		toRemove = chosen
	}

	if len(toRemove) == 0 {
		if !cfg.Quiet {
			fmt.Println("No references selected, manifest unchanged")
		}
		return nil
	}

	if fixDiff {
		return showFixDiff(manifestFile, toRemove)
	}

	outcome, err := fixer.Fix(manifestFile, root, toRemove, fixer.Options{Backup: !fixNoBackup})
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Printf("Removed %d dangling reference(s) from %s\n", outcome.Removed, manifestFile)
		if outcome.BackupPath != "" {
			fmt.Printf("Original backed up to %s\n", outcome.BackupPath)
		}
		if outcome.Result.Valid {
			fmt.Println("Re-validation passed")
		} else {
			fmt.Printf("Re-validation still reports %d error(s)\n", len(outcome.Result.Errors))
		}
	}

	if !outcome.Result.Valid {
		exitFunc(1)
	}
	return nil
}

// showFixDiff previews the rewrite without writing the manifest.
func showFixDiff(manifestFile string, toRemove []validate.ValidationError) error {
	original, err := os.ReadFile(manifestFile)
	if err != nil {
		return fmt.Errorf("error reading manifest: %w", err)
	}
	m, err := manifest.Parse(original, manifestFile)
	if err != nil {
		return err
	}

	fixer.Apply(m, toRemove)
	fixed, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling manifest: %w", err)
	}
	fixed = append(fixed, '\n')

	diff := fixer.Diff(string(original), string(fixed), manifestFile)
	if diff == "" {
		fmt.Println("No changes")
		return nil
	}
	fmt.Print(diff)
	return nil
}
