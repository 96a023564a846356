package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/discovery"
	"github.com/dotcommander/mplint/internal/project"
)

var (
	rootPath     string
	manifestPath string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "mplint",
	Short: "Validate Claude Code plugin marketplace manifests",
	Long: `mplint validates a plugin marketplace manifest (.claude-plugin/marketplace.json)
by checking that every file path a plugin references - commands, agents, and
MCP server definitions - exists on disk relative to the project root.

By default mplint locates the manifest under the project root and reports
every dangling reference. Use 'fix' to strip dangling references from the
manifest, or 'history' to ask git where a missing file went.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Project root directory (auto-detected if not specified)")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "Manifest path (auto-discovered under the root if not specified)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("noColor", rootCmd.PersistentFlags().Lookup("no-color"))
}

// resolveRoot returns the configured project root, auto-detecting it from
// the working directory when unset.
func resolveRoot(cfg *config.Config) (string, error) {
	if cfg.Root != "" {
		return cfg.Root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error determining working directory: %w", err)
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		return "", fmt.Errorf("error detecting project root: %w", err)
	}
	return root, nil
}

// resolveTargets fills in the project root and manifest path the run
// operates on, auto-detecting whatever the flags left unspecified.
func resolveTargets(cfg *config.Config) (root, manifest string, err error) {
	root, err = resolveRoot(cfg)
	if err != nil {
		return "", "", err
	}

	manifest = cfg.Manifest
	if manifest == "" {
		manifest, err = discovery.FindManifest(root)
		if err != nil {
			return "", "", err
		}
	}

	return root, manifest, nil
}
