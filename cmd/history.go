package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/history"
	"github.com/dotcommander/mplint/internal/validate"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Ask git where each missing file went",
	Long: `The history command validates the manifest and then queries git history
for every missing path, classifying it as never-existed, deleted in a
known commit, or possibly renamed to a similarly named tracked file.
Where recovery is possible it prints the command to run.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory() error {
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
			fmt.Println("All references valid, nothing to search for")
		}
		return nil
	}

	if !history.IsGitRepo(root) {
		return fmt.Errorf("%s is not a git repository", root)
	}

	printFindings(cfg, root, result.Errors)
	exitFunc(1)
	return nil
}

func printFindings(cfg *config.Config, root string, errors []validate.ValidationError) {
	headStyle := lipgloss.NewStyle().Bold(true)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if cfg.NoColor {
		headStyle = lipgloss.NewStyle()
		pathStyle = lipgloss.NewStyle()
		hintStyle = lipgloss.NewStyle()
	}

	for _, e := range errors {
		if e.Field == "" {
			continue
		}
		finding := history.Classify(root, e.Path, cfg.MaxCandidates)

		fmt.Printf("%s %s (%s/%s)\n", pathStyle.Render("✗"), e.Path, e.Plugin, e.Field)
		switch finding.Status {
		case history.StatusDeleted:
			fmt.Printf("    %s", headStyle.Render("deleted"))
			if finding.DeletionCommit != "" {
				fmt.Printf(" in %.12s", finding.DeletionCommit)
			}
			if finding.DeletionTitle != "" {
				fmt.Printf(" (%s)", finding.DeletionTitle)
			}
			fmt.Println()
		case history.StatusRenamed:
			fmt.Printf("    %s\n", headStyle.Render("possibly renamed"))
			for _, c := range finding.Candidates {
				fmt.Printf("      candidate: %s\n", c)
			}
		case history.StatusNeverExisted:
			fmt.Printf("    %s\n", headStyle.Render("never existed in git history"))
		default:
			fmt.Printf("    %s\n", headStyle.Render("no history available"))
		}

		if remediation := finding.Remediation(); remediation != "" {
			fmt.Printf("    %s %s\n", hintStyle.Render("→"), remediation)
		}
	}
}
