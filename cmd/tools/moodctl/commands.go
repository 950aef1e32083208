package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moodmate/companion/internal/analysis/sentiment"
	"github.com/moodmate/companion/internal/analysis/trait"
	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/model/mood"
	chatService "github.com/moodmate/companion/internal/service/chat"
	moodService "github.com/moodmate/companion/internal/service/mood"
)

const defaultServer = "http://localhost:5001"

type rootOptions struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "moodctl",
		Short:         "Operator tool for the MoodMate API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("MOODCTL_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env MOODCTL_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newTrendsCmd(opts),
		newReplyCmd(),
		newAnalyzeCmd(),
		newScoreCmd(),
	)
	return root
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.server, o.timeout)
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var moodLabel, journal string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a mood entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(moodLabel) == "" {
				return fmt.Errorf("--mood is required")
			}
			var entry mood.Entry
			body := map[string]string{"mood": moodLabel, "journal": journal}
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/mood/add", body, &entry); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	cmd.Flags().StringVar(&moodLabel, "mood", "", "mood label")
	cmd.Flags().StringVar(&journal, "journal", "", "optional journal text")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mood entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []mood.Entry
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/mood/all", nil, &entries); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range entries {
				line := fmt.Sprintf("%s  %-10s", e.Timestamp.Local().Format(time.DateTime), e.Mood)
				if e.Journal != "" {
					line += "  " + e.Journal
				}
				fmt.Fprintln(w, line)
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "no entries")
			}
			return nil
		},
	}
}

func newTrendsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show mood distribution and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var trends moodService.Trends
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/mood/trends", nil, &trends); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), trends)
		},
	}
}

func newReplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reply <message>",
		Short: "Run the chat responder offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			replier, err := chatService.NewReplier(ctx, catalog.MustLoad().Chat, 0)
			if err != nil {
				return err
			}
			reply, err := replier.Reply(ctx, chatService.ReplyRequest{Message: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", reply.Rule, reply.Text)
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Classify journal text offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := sentiment.NewClassifier(catalog.MustLoad().Journal).Classify(strings.Join(args, " "))
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <question=value>...",
		Short: "Score quiz answers offline, e.g. q1=5 q2=3",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := parseAnswers(args)
			if err != nil {
				return err
			}
			result, err := trait.Compute(catalog.MustLoad().Quiz, answers)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range result.Traits {
				fmt.Fprintf(w, "%-18s %5.1f\n", s.Label, s.Score)
			}
			fmt.Fprintln(w, result.Summary)
			return nil
		},
	}
}

func parseAnswers(args []string) (map[string]int, error) {
	answers := make(map[string]int, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid answer %q, expected question=value", arg)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", arg, err)
		}
		answers[strings.TrimSpace(id)] = v
	}
	return answers, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
