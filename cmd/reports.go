package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/practice"
	"github.com/abhisek/interviewx/internal/profile"
	"github.com/abhisek/interviewx/internal/store"
	"github.com/abhisek/interviewx/internal/ui/markdown"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse and export interview feedback",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished interviews, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		reps, err := st.ReportRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(reps) == 0 {
			fmt.Fprintln(out, "No reports yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-24s  %-28s  %-12s  %s\n",
			"ID", "Date", "Company", "Role", "Level", "Language")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range reps {
			fmt.Fprintf(out, "%-5d  %-16s  %-24s  %-28s  %-12s  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.CompanyName, 24),
				truncate(r.JobRole, 28),
				tierLabel(r.Tier),
				language.Name(r.Language),
			)
		}
		return nil
	},
}

var reportsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the feedback of a finished interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, _ := cmd.Flags().GetBool("transcript")
		width, _ := cmd.Flags().GetInt("width")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := loadReport(cmd, st, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Company:   %s\n", rep.CompanyName)
		fmt.Fprintf(out, "Role:      %s\n", rep.JobRole)
		fmt.Fprintf(out, "Website:   %s\n", rep.CompanyURL)
		fmt.Fprintf(out, "Date:      %s\n", rep.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "Level:     %s\n", tierLabel(rep.Tier))
		fmt.Fprintf(out, "Language:  %s\n", language.Name(rep.Language))
		fmt.Fprintln(out)
		fmt.Fprintln(out, markdown.Render(rep.Feedback, width))

		if !transcript {
			return nil
		}
		exported, err := practice.DecodeTranscript(rep)
		if err != nil {
			return err
		}
		sep := strings.Repeat("─", 60)
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "TRANSCRIPT")
		fmt.Fprintln(out, sep)
		for _, t := range exported.ChatHistory {
			fmt.Fprintf(out, "[%s] %s\n\n", t.Role, t.Text)
		}
		return nil
	},
}

var reportsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a report as JSON with its feedback and chat history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := loadReport(cmd, st, args[0])
		if err != nil {
			return err
		}

		if output == "-" {
			return practice.ExportReport(cmd.OutOrStdout(), rep)
		}
		if output == "" {
			output = practice.ExportFileName(rep)
		}
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		if err := writeAndClose(f, rep); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", output)
		return nil
	},
}

func writeAndClose(f io.WriteCloser, rep *store.Report) error {
	if err := practice.ExportReport(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadReport(cmd *cobra.Command, st *store.Store, arg string) (*store.Report, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ID %q: %w", arg, err)
	}
	rep, err := st.ReportRepo().Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("report %d not found", id)
	}
	return rep, nil
}

func tierLabel(s string) string {
	if t, err := profile.ParseTier(s); err == nil {
		return t.Label()
	}
	return s
}

func init() {
	reportsListCmd.Flags().IntP("limit", "n", 20, "Number of reports to show")
	reportsViewCmd.Flags().Bool("transcript", false, "Also print the conversation")
	reportsViewCmd.Flags().Int("width", 80, "Word wrap width for the feedback")
	reportsExportCmd.Flags().StringP("output", "o", "", "Output file; - for stdout (default interview-report-<n>.json)")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsViewCmd)
	reportsCmd.AddCommand(reportsExportCmd)
}
