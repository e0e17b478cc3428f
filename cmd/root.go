package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/config"
	"github.com/abhisek/interviewx/internal/logging"
	"github.com/abhisek/interviewx/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interviewx",
	Short: "Practice job interviews with an AI interviewer",
	Long: `interviewx runs mock job interviews in the terminal. An AI interviewer asks
questions tailored to the company and role, gives feedback at the end, and a
short multiple-choice test unlocks the next difficulty level.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// settings is the loaded configuration, shared by every subcommand.
var settings struct {
	cfg     *config.Config
	cfgPath string
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVIEWX_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to the settings file (overrides INTERVIEWX_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the settings file and configures logging to stderr.
// Commands that start the terminal UI move logging to a file.
func setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	settings.cfg = cfg
	settings.cfgPath = path

	if err := logging.Setup(logLevel(cmd), cmd.ErrOrStderr()); err != nil {
		return err
	}
	log.Debug().Str("config", path).Msg("settings loaded")
	return nil
}

// logLevel prefers --log-level over the settings file.
func logLevel(cmd *cobra.Command) string {
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		return lvl
	}
	if settings.cfg != nil {
		return settings.cfg.LogLevel
	}
	return ""
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the settings file, then INTERVIEWX_DB env var and the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if settings.cfg != nil && settings.cfg.DBPath != "" {
		return settings.cfg.DBPath, store.EnsureDir(settings.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
