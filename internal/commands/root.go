package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/buildinfo"
	"github.com/simplefinance/simplefinance/internal/categories"
	"github.com/simplefinance/simplefinance/internal/config"
	"github.com/simplefinance/simplefinance/internal/importer"
	"github.com/simplefinance/simplefinance/internal/session"
)

// globalOptions holds the persistent flags and what they resolve to.
type globalOptions struct {
	configPath string
	verbose    bool
	logger     *log.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "simplefinance",
		Short:   "Categorize and summarize bank statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			opts.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Level: level})
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newCategoriesCommand(opts),
		newReportCommand(opts),
		newExportCommand(opts),
		newRecategorizeCommand(opts),
		newGenCommand(),
	)

	return rootCmd
}

// loadConfig reads the config named by --config.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(o.configPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded config", "path", o.configPath, "categories", cfg.CategoriesFile)
	return cfg, nil
}

// openSession opens the category store and starts a session over it.
func (o *globalOptions) openSession(cfg *config.Config) (*session.Session, error) {
	store, err := categories.Open(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}
	sess := session.New(store, o.logger, cfg.HistoryFile)
	o.logger.Debug("session started", "id", sess.ID(), "categories", store.Path())
	return sess, nil
}

// loadStatement opens a session and loads file with the configured parser.
func (o *globalOptions) loadStatement(cfg *config.Config, file string) (*session.Session, error) {
	sess, err := o.openSession(cfg)
	if err != nil {
		return nil, err
	}

	registry := importer.DefaultRegistry(importer.StatementOptions{
		DateLayout:      cfg.Statement.DateLayout,
		DirectionColumn: cfg.Statement.DirectionColumn,
	})
	parser := registry.Get(cfg.Statement.Format)
	if parser == nil {
		return nil, fmt.Errorf("unknown statement format %q", cfg.Statement.Format)
	}

	if err := sess.LoadFile(file, parser); err != nil {
		return nil, fmt.Errorf("loading %s: %w", file, err)
	}
	return sess, nil
}
