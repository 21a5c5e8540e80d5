package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/categories"
	"github.com/simplefinance/simplefinance/internal/config"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default config and category file",
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

			return runInit(cmd.OutOrStdout(), absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(out io.Writer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()

	// Write simplefinance.yaml.
	cfgPath := filepath.Join(dir, config.FileName)
	if err := ensureAbsent(cfgPath, force); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default categories.
	catPath := filepath.Join(dir, cfg.CategoriesFile)
	if err := ensureAbsent(catPath, force); err != nil {
		return err
	}
	if err := categories.Save(catPath, categories.Default()); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	fmt.Fprintf(out, "Initialized simplefinance project at %s\n", dir)
	return nil
}

func ensureAbsent(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", filepath.Base(path))
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", filepath.Base(path), err)
	}
	return nil
}
