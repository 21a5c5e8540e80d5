package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/session"
)

func newCategoriesCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories and their keywords",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories and keywords",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sess, err := openFromFlags(opts)
				if err != nil {
					return err
				}
				return runCategoriesList(cmd.OutOrStdout(), sess)
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create an empty category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sess, err := openFromFlags(opts)
				if err != nil {
					return err
				}
				added, err := sess.AddCategory(args[0])
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "Category %q already exists\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "add-keyword <category> <keyword>",
			Short: "File a keyword under a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				sess, err := openFromFlags(opts)
				if err != nil {
					return err
				}
				added, err := sess.AddKeyword(args[0], args[1])
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q not added (empty or already present)\n", args[1])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added keyword %q to %q\n", args[1], args[0])
				return nil
			},
		},
	)

	return cmd
}

func openFromFlags(opts *globalOptions) (*session.Session, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	return opts.openSession(cfg)
}

func runCategoriesList(out io.Writer, sess *session.Session) error {
	cats := sess.Categories().All()
	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = []string{c.Name, keywordList(c.Keywords)}
	}
	_, err := fmt.Fprintln(out, defaultStyles().table([]string{"Category", "Keywords"}, rows))
	return err
}
