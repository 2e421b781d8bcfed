package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vidyasagar/fsurf/internal/app"
	"github.com/vidyasagar/fsurf/internal/client"
	"github.com/vidyasagar/fsurf/internal/logging"
	"github.com/vidyasagar/fsurf/internal/storage"
	"github.com/vidyasagar/fsurf/internal/theme"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		themeName string
		logLevel  string
		retries   int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fsurf [server]",
		Short: "fsurf - browse a machine's drives and folders from the terminal",
		Long: `fsurf browses the filesystem of a machine running "fsurf serve".

The breadcrumb bar remembers where you have been: stepping back hides
segments without forgetting them, so you can step forward again.`,
		Example: `  fsurf                        # browse the server from the config file
  fsurf nas.local:8849         # auto-adds http://
  fsurf --theme nord           # use the nord theme
  fsurf serve --addr :8849     # share this machine`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := storage.LoadConfig()
			if err != nil {
				return report(err)
			}

			server := cfg.Server
			if len(args) > 0 {
				server = args[0]
			}
			if cmd.Flags().Changed("theme") {
				cfg.Theme = themeName
			}
			if !theme.Set(cfg.Theme) {
				return report(fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(theme.List(), ", ")))
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.LogLevel
			}
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return report(err)
			}

			dataDir, err := storage.DataDir()
			if err != nil {
				return report(err)
			}
			log, closer, err := logging.OpenFile(dataDir, level)
			if err != nil {
				return report(err)
			}
			defer closer.Close()

			db, err := storage.OpenDB(dataDir)
			if err != nil {
				return report(err)
			}
			defer db.Close()

			c, err := client.New(server, client.Options{
				Timeout:  timeout,
				RetryMax: retries,
				Logger:   log,
			})
			if err != nil {
				return report(err)
			}
			log.Info().Str("server", c.BaseURL()).Msg("starting")

			m := app.New(app.Options{
				Provider:     c,
				Server:       c.BaseURL(),
				Bookmarks:    storage.NewBookmarkStore(db),
				Visits:       storage.NewVisitStore(db, cfg.MaxVisits),
				Config:       cfg,
				CacheSize:    cfg.CacheSize,
				CacheTTL:     cfg.CacheTTL(),
				FetchTimeout: timeout,
				Log:          log,
			})
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return report(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level written to fsurf.log (debug, info, warn, error)")
	cmd.Flags().IntVar(&retries, "retries", 2, "retries for failed listing requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "timeout for one listing request")

	cmd.AddCommand(newServeCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the fsurf version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fsurf %s\n", version)
		},
	})
	return cmd
}

func report(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
