package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forgeapps/onboardgen/internal/cli/runner"
	"github.com/forgeapps/onboardgen/pkg/workflow"
)

var (
	outputPath     string
	aiRepair       bool
	aiEnhance      bool
	skipRefinement bool
	dryRun         bool
	overwrite      bool
	fresh          bool
	assumeYes      bool

	generateCmd = &cobra.Command{
		Use:   "generate [spec file]",
		Short: "Generate an onboarding flow from a spec",
		Long:  "Run the generation workflow for the given onboarding spec, resuming from a checkpoint if an earlier run was interrupted",
		Args:  cobra.ExactArgs(1),
		Example: `  onboardgen generate app.md
  onboardgen generate --output ./my-app app.md
  onboardgen generate --ai-repair --ai-enhance app.md
  onboardgen generate --dry-run app.md`,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output directory (default: ./<spec name>-app)")
	generateCmd.Flags().BoolVar(&aiRepair, "ai-repair", false, "Repair an invalid spec with AI before generating")
	generateCmd.Flags().BoolVar(&aiEnhance, "ai-enhance", false, "Enhance the spec with AI before generating")
	generateCmd.Flags().BoolVar(&skipRefinement, "skip-refinement", false, "Skip the refinement phase")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the workflow without writing any output files")
	generateCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Allow writing into a non-empty output directory")
	generateCmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore any existing checkpoint and start from phase 1")
	generateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes on the resume confirmation prompt")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	specFile := args[0]

	if _, err := os.Stat(specFile); os.IsNotExist(err) {
		return fmt.Errorf("spec file not found: %s", specFile)
	}

	opts := workflow.Options{
		SpecPath:       specFile,
		OutputPath:     outputPath,
		AIRepair:       aiRepair,
		AIEnhance:      aiEnhance,
		SkipRefinement: skipRefinement,
		DryRun:         dryRun,
		Overwrite:      overwrite,
		Verbose:        verbose,
		Fresh:          fresh,
		AssumeYes:      assumeYes,
	}

	r, err := runner.New(opts)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(color.YellowString("🔍 Dry run: no files will be written"))
	}
	fmt.Println(color.GreenString("🚀 Generating onboarding flow from %s", specFile))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := r.Run(ctx); err != nil {
		return err
	}

	fmt.Println(color.GreenString("✅ Generation completed successfully"))
	return nil
}
