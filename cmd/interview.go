package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/interview"
	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	"github.com/abhisek/interviewx/internal/screens/exam"
	interviewscreen "github.com/abhisek/interviewx/internal/screens/interview"
	"github.com/abhisek/interviewx/internal/screens/setup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new interview",
	Long: `Start a new interview. With --company, --role and --url the interview
begins right away; otherwise the setup form is shown. Starting a new
interview discards any paused one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		role, _ := cmd.Flags().GetString("role")
		url, _ := cmd.Flags().GetString("url")
		lang, _ := cmd.Flags().GetString("language")

		if lang == "" {
			lang = settings.cfg.Language
		}
		l, ok := language.Lookup(lang)
		if !ok {
			return fmt.Errorf("unknown language %q", lang)
		}

		params := interview.Params{CompanyName: company, JobRole: role, CompanyURL: url}
		direct := company != "" || role != "" || url != ""
		if direct {
			if err := params.Validate(); err != nil {
				return err
			}
		}

		return runApp(cmd, func(env *screens.Env) (screen.Screen, error) {
			p, err := env.Practice.Progress(context.Background())
			if err != nil {
				return nil, err
			}
			if !direct {
				return setup.New(env, p.Tier), nil
			}
			return interviewscreen.New(env, params, l.Code, p.Tier), nil
		})
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the paused interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(env *screens.Env) (screen.Screen, error) {
			ctx := context.Background()
			snap, err := env.Practice.Paused(ctx)
			if errors.Is(err, interview.ErrIncompatibleSnapshot) {
				return nil, fmt.Errorf("the paused interview was saved by another version and cannot be resumed: %w", err)
			}
			if err != nil {
				return nil, err
			}
			if snap == nil {
				return nil, errors.New("no paused interview; run `interviewx start` to begin one")
			}
			p, err := env.Practice.Progress(ctx)
			if err != nil {
				return nil, err
			}
			return interviewscreen.Resume(env, snap, p.Tier), nil
		})
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Take the promotion test for the next level",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return runApp(cmd, func(env *screens.Env) (screen.Screen, error) {
			p, err := env.Practice.Progress(context.Background())
			if err != nil {
				return nil, err
			}
			if _, ok := p.Tier.Next(); !ok {
				return nil, fmt.Errorf("already at the %s level", p.Tier.Label())
			}
			if !force && !env.Practice.TestEligible(p) {
				return nil, errors.New(env.Practice.Status(p))
			}
			return exam.New(env, p.Tier), nil
		})
	},
}

func init() {
	startCmd.Flags().String("company", "", "Company name")
	startCmd.Flags().String("role", "", "Job role")
	startCmd.Flags().String("url", "", "Company website (http or https)")
	startCmd.Flags().StringP("language", "l", "", "Interview language code, e.g. en, es, fr")

	testCmd.Flags().Bool("force", false, "Take the test before it is unlocked")
}
