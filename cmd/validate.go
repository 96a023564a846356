package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/mplint/internal/config"
	"github.com/dotcommander/mplint/internal/discovery"
	"github.com/dotcommander/mplint/internal/manifest"
	"github.com/dotcommander/mplint/internal/output"
	"github.com/dotcommander/mplint/internal/outputters"
	"github.com/dotcommander/mplint/internal/schema"
	"github.com/dotcommander/mplint/internal/validate"
)

var validateAll bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every referenced path in the manifest exists",
	Long: `The validate command checks every path the manifest's plugins reference
(commands, agents, mcpServers) against the project root and reports each
missing file, grouped by plugin. With --all, every marketplace manifest
under the root is validated.

Exit code is 0 when all references resolve, 1 otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		run := runValidate
		if validateAll {
			run = runValidateAll
		}
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate every marketplace manifest under the root")
	rootCmd.AddCommand(validateCmd)
}

// runManifestValidation performs the full check for one manifest: shape
// first, then path existence. Shape problems surface on stderr but do not
// stop path validation, so a single run reports everything it can.
func runManifestValidation(cfg *config.Config, root, manifestFile string) validate.Result {
	if content, err := os.ReadFile(manifestFile); err == nil {
		if raw, err := manifest.ParseRaw(content, manifestFile); err == nil {
			for _, e := range schema.NewValidator().Validate(raw) {
				if !cfg.Quiet {
					fmt.Fprintf(os.Stderr, "Warning: %s\n", e.Message)
				}
			}
		}
	}

	return validate.New().ValidateFile(manifestFile, root)
}

func runValidate() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	root, manifestFile, err := resolveTargets(cfg)
	if err != nil {
		return err
	}

	result := runManifestValidation(cfg, root, manifestFile)

	report := &output.Report{
		ManifestPath: manifestFile,
		ProjectRoot:  root,
		Result:       result,
	}
	outputter := outputters.NewOutputter(cfg, os.Stdout)
	if err := outputter.Format(report); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	if !result.Valid {
		exitFunc(1)
	}
	return nil
}

// runValidateAll validates every marketplace manifest under the root, for
// repositories hosting more than one marketplace. Exit code reflects the
// worst result.
func runValidateAll() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	root, err := resolveRoot(cfg)
	if err != nil {
		return err
	}

	manifests, err := discovery.FindManifests(root)
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no marketplace manifest found under %s", root)
	}

	outputter := outputters.NewOutputter(cfg, os.Stdout)
	allValid := true
	for _, manifestFile := range manifests {
		result := runManifestValidation(cfg, root, manifestFile)
		report := &output.Report{
			ManifestPath: manifestFile,
			ProjectRoot:  root,
			Result:       result,
		}
		if err := outputter.Format(report); err != nil {
			return fmt.Errorf("error formatting output: %w", err)
		}
		allValid = allValid && result.Valid
	}

	if !allValid {
		exitFunc(1)
	}
	return nil
}
