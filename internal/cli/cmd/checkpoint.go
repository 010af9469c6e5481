package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeapps/onboardgen/pkg/checkpoint"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or clear workflow checkpoints",
}

var checkpointStatusCmd = &cobra.Command{
	Use:   "status [spec file]",
	Short: "Show the checkpoint for a spec, if any",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, specPath, err := checkpointStore(args[0])
		if err != nil {
			return err
		}

		cp, err := store.Load(specPath)
		if err != nil {
			return err
		}
		if cp == nil {
			fmt.Println("No checkpoint for", specPath)
			return nil
		}

		fmt.Println(color.CyanString("Checkpoint for %s", specPath))
		fmt.Printf("  Phase:     %d (%s)\n", cp.Phase, checkpoint.PhaseName(cp.Phase))
		fmt.Printf("  Saved:     %s\n", cp.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("  Output:    %s\n", cp.OutputPath)
		fmt.Printf("  Spec hash: %s\n", cp.SpecHash[:12])

		if v := checkpoint.Validate(cp); !v.Valid {
			fmt.Println(color.YellowString("  Not resumable:"))
			for _, e := range v.Errors {
				fmt.Printf("    - %s\n", e)
			}
		}
		return nil
	},
}

var checkpointClearCmd = &cobra.Command{
	Use:   "clear [spec file]",
	Short: "Delete the checkpoint for a spec",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, specPath, err := checkpointStore(args[0])
		if err != nil {
			return err
		}
		if err := store.Clear(specPath); err != nil {
			return err
		}
		fmt.Println(color.GreenString("✅ Checkpoint cleared"))
		return nil
	},
}

func checkpointStore(specArg string) (*checkpoint.Store, string, error) {
	specPath, err := filepath.Abs(specArg)
	if err != nil {
		return nil, "", err
	}
	store, err := checkpoint.NewStore(viper.GetString("state_dir"))
	if err != nil {
		return nil, "", err
	}
	return store, specPath, nil
}

func init() {
	checkpointCmd.AddCommand(checkpointStatusCmd)
	checkpointCmd.AddCommand(checkpointClearCmd)
	rootCmd.AddCommand(checkpointCmd)
}
