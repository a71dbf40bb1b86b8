package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aims-dev/sectorburst/internal/config"
	"github.com/aims-dev/sectorburst/internal/reference"
)

// SectorsFile is the reference table written by init.
const SectorsFile = "sectors.csv"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default config and sector reference table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized sectorburst project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	sectorsPath := filepath.Join(dir, SectorsFile)
	if !force {
		for _, p := range []string{cfgPath, sectorsPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	// Write the bundled table so it can be edited in place.
	if err := os.WriteFile(sectorsPath, reference.DefaultCSV(), 0o644); err != nil {
		return fmt.Errorf("writing sector reference: %w", err)
	}

	cfg := config.Default()
	cfg.Reference.Path = SectorsFile
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
