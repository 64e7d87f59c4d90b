package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/store"
)

// app carries the state built by the root command for its subcommands.
type app struct {
	configFile string
	config     Config
	logger     *zap.Logger
}

func (a *app) newFetcher() *fetch.Fetcher {
	return fetch.New(store.New(),
		fetch.WithTimeout(a.config.Timeout),
		fetch.WithUserAgent(a.config.UserAgent),
		fetch.WithLogger(a.logger))
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	v := newViper()

	root := &cobra.Command{
		Use:   "pgfetch",
		Short: "Fetch RDF documents and inspect their HTTP metadata",
		Long: `pgfetch loads RDF documents over HTTP into an in-memory store.

Besides the document triples it records the request and response of every
load, so the status, headers, Link relations and the access modes implied
by the Allow header can be read back.

Settings come from flags, PGFETCH_* environment variables and pgfetch.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, a.configFile)
			if err != nil {
				return err
			}
			a.config = cfg

			config := zap.NewProductionConfig()
			if cfg.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./pgfetch.yaml)")
	flags.Duration("timeout", fetch.DefaultTimeout, "HTTP timeout per document")
	flags.String("user-agent", "pgfetch", "User-Agent header")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(newInspectCmd(a), newDumpCmd(a), newFetchAllCmd(a))
	return root
}
