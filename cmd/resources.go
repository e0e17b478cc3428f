package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewx/internal/resources"
	"github.com/abhisek/interviewx/internal/screen"
	"github.com/abhisek/interviewx/internal/screens"
	resourcescreen "github.com/abhisek/interviewx/internal/screens/resources"
	"github.com/abhisek/interviewx/internal/ui/markdown"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Browse interview preparation guides",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(env *screens.Env) (screen.Screen, error) {
			return resourcescreen.New(env), nil
		})
	},
}

var resourcesTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the guide topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, t := range resources.Topics() {
			fmt.Fprintf(out, "%d. %s\n", i+1, t)
		}
		return nil
	},
}

var resourcesReadCmd = &cobra.Command{
	Use:   "read <number|topic>",
	Short: "Write a guide and print it",
	Long: `Write a guide on one of the listed topics (by number) or on any topic
given as text, in the configured language.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		topic := args[0]
		if n, err := strconv.Atoi(topic); err == nil {
			topics := resources.Topics()
			if n < 1 || n > len(topics) {
				return fmt.Errorf("topic number must be between 1 and %d", len(topics))
			}
			topic = topics[n-1]
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		env, err := buildEnv(cmd, st)
		if err != nil {
			return err
		}
		art, err := env.Resources.Article(cmd.Context(), topic, settings.cfg.Language)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", art.Topic)
		fmt.Fprintln(out, markdown.Render(art.Content, width))
		return nil
	},
}

func init() {
	resourcesReadCmd.Flags().Int("width", 80, "Word wrap width for the guide")
	resourcesCmd.AddCommand(resourcesTopicsCmd)
	resourcesCmd.AddCommand(resourcesReadCmd)
}
