package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/export"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var (
		filters filterFlags
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the filtered, expenses and payments tables as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			criteria, err := filters.criteria()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.Export.Dir
			}

			sess, err := opts.loadStatement(cfg, args[0])
			if err != nil {
				return err
			}

			w := export.Writer{DateLayout: cfg.Export.DateLayout}
			paths, err := w.WriteAll(outDir, sess.View(criteria))
			if err != nil {
				return fmt.Errorf("exporting: %w", err)
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
			}
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")

	return cmd
}
