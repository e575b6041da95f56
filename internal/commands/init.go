package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/config"
	"github.com/swissfort-mfg/entrydesk/internal/master"
)

func newInitCommand() *cobra.Command {
	var name string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default entrydesk.yaml and master option file",
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

			if err := runInit(absDir, name, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized entrydesk project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Swissfort Mfg.", "business name")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(dir, name string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := master.NewService(master.DefaultCatalog())
	if err := svc.Save(filepath.Join(dir, cfg.MasterFile)); err != nil {
		return fmt.Errorf("writing master options: %w", err)
	}
	return nil
}
