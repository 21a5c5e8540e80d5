package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "gen",
		Short:  "Generate documentation",
		Hidden: true,
	}

	var dir string
	manCmd := &cobra.Command{
		Use:   "man",
		Short: "Generate man pages for simplefinance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating man dir: %w", err)
			}
			return doc.GenManTreeFromOpts(cmd.Root(), doc.GenManTreeOptions{
				Header: &doc.GenManHeader{
					Title:   "SIMPLEFINANCE",
					Section: "1",
				},
				Path: dir,
			})
		},
	}
	manCmd.Flags().StringVar(&dir, "dir", "man/", "target directory for man pages")

	cmd.AddCommand(manCmd)
	return cmd
}
