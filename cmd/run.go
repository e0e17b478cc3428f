package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/app"
	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/conversation"
	"github.com/abhisek/interviewx/internal/llm"
	"github.com/abhisek/interviewx/internal/logging"
	"github.com/abhisek/interviewx/internal/practice"
	"github.com/abhisek/interviewx/internal/resources"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/store"
)

// providerConfig reads INTERVIEWX_* variables and falls back to the
// vendors' own API key variables when no provider was chosen explicitly.
func providerConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("INTERVIEWX_LLM_PROVIDER") == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			return found, nil
		}
	}
	return cfg, err
}

// practiceService builds the practice service over st.
func practiceService(st *store.Store) *practice.Service {
	return practice.NewService(practice.Repos{
		Paused:   st.PausedRepo(),
		Progress: st.ProgressRepo(),
		Reports:  st.ReportRepo(),
		Tx:       st,
	}, settings.cfg.TestThreshold)
}

// buildEnv wires the model provider and the repositories into the services
// the screens use.
func buildEnv(cmd *cobra.Command, st *store.Store) (*screens.Env, error) {
	cfg, err := providerConfig()
	if err != nil {
		return nil, fmt.Errorf("model provider not configured: %w", err)
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg, st.EventRepo())
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", cfg.Provider).Str("model", provider.ModelID()).Msg("model provider ready")

	return &screens.Env{
		Conversation: conversation.New(provider, conversation.DefaultConfig()),
		Generator:    assessment.New(provider, assessment.DefaultConfig()),
		Resources:    resources.New(provider, resources.DefaultConfig()),
		Practice:     practiceService(st),
		Reports:      st.ReportRepo(),
		Attempts:     st.AttemptRepo(),
		Config:       settings.cfg,
		ConfigPath:   settings.cfgPath,
	}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI. start
// builds the first screen above the dashboard; nil shows the splash screen.
func runApp(cmd *cobra.Command, start func(env *screens.Env) (screen.Screen, error)) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	env, err := buildEnv(cmd, st)
	if err != nil {
		return err
	}

	var first screen.Screen
	if start != nil {
		if first, err = start(env); err != nil {
			return err
		}
	}

	logPath, err := logging.DefaultLogPath()
	if err != nil {
		return err
	}
	closer, err := logging.SetupFile(logLevel(cmd), logPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	return app.Run(cmd.Context(), env, first)
}
