package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/language"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show your level and progress towards the next test",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := practiceService(st)
		ctx := cmd.Context()
		p, err := svc.Progress(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Level:       %s\n", p.Tier.Label())
		if _, ok := p.Tier.Next(); ok {
			fmt.Fprintf(out, "Interviews:  %d/%d\n", min(p.InterviewsCompleted, svc.Threshold()), svc.Threshold())
		} else {
			fmt.Fprintf(out, "Interviews:  %d\n", p.InterviewsCompleted)
		}
		fmt.Fprintf(out, "Language:    %s\n", language.Name(settings.cfg.Language))

		if snap, err := svc.Paused(ctx); err == nil && snap != nil {
			fmt.Fprintf(out, "Paused:      %s · %s (%s)\n",
				snap.Params.CompanyName, snap.Params.JobRole,
				snap.PausedAt.Local().Format("2006-01-02 15:04"))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, svc.Status(p))
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return to the Beginner level",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this clears your level and interview count; pass --yes to confirm")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := practiceService(st).ResetProgress(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. You are back at the Beginner level.")
		return nil
	},
}

func init() {
	progressResetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
	progressCmd.AddCommand(progressResetCmd)
}
