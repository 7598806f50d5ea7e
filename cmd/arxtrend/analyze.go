// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxtrend/internal/client"
	"github.com/pdiddy/arxtrend/internal/render"
	"github.com/pdiddy/arxtrend/internal/session"
	"github.com/pdiddy/arxtrend/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [topic...]",
	Short: "Analyze keyword trends for a research topic",
	Long: `Analyze submits a topic to the research analysis service and renders the
result: keyword frequencies grouped into time buckets, the numbered trend
summary, the research evolution narrative, top keywords, and related papers.

The topic is taken from --topic or from the remaining arguments. Dates are
YYYY-MM-DD. On any service failure a single message is printed and the
command exits with status 1; details go to the log.`,
	Example: `  arxtrend analyze "graph neural networks" --from 2023-01-01 --to 2024-06-30
  arxtrend analyze --topic diffusion --granularity quarter --format markdown`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("topic", "", "research topic (alternative to positional arguments)")
	f.String("from", "", "publication date range start (YYYY-MM-DD)")
	f.String("to", "", "publication date range end (YYYY-MM-DD)")
	f.Int("max-papers", 0, "maximum number of papers to analyze, 1 to 1000 (default: service decides)")
	f.String("base-url", "", "analysis service base URL (default http://localhost:8000)")
	f.Duration("timeout", 0, "request timeout (default 5m)")
	f.Int("retries", 0, "retry transient failures up to this many times (max 3)")

	bindFlags(viper.GetViper(), f, map[string]string{
		"service.base_url":    "base-url",
		"service.timeout":     "timeout",
		"service.max_retries": "retries",
	})

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd, args)
	if err != nil {
		return err
	}
	out, err := parseOutputSettings(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := render.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), out.color)
	if req.HasDateRange() && req.StartDate.After(*req.EndDate) {
		printer.Warning("--from %s is after --to %s; sending as given",
			req.StartDate.Format(time.DateOnly), req.EndDate.Format(time.DateOnly))
	}

	c := client.New(cfg.Service, client.WithLogger(logger))
	sess := session.New(c, session.Options{Render: out.render}, logger)

	report, err := sess.Submit(ctx, req)
	if err != nil {
		var failure *session.Failure
		if errors.As(err, &failure) {
			printer.Failure(failure.Message)
			return errReported
		}
		return err
	}
	return printer.Write(report, out.format, out.style)
}

// requestFromFlags assembles a ResearchRequest. Field rules (non-blank
// topic, paper bounds) are checked by the session, not here.
func requestFromFlags(cmd *cobra.Command, args []string) (types.ResearchRequest, error) {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = strings.Join(args, " ")
	} else if len(args) > 0 {
		return types.ResearchRequest{}, fmt.Errorf("give the topic either as --topic or as arguments, not both")
	}

	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	req := types.ResearchRequest{Topic: topic, MaxPapers: maxPapers}
	if cmd.Flags().Changed("max-papers") && maxPapers == 0 {
		return req, fmt.Errorf("%w: maxPapers must be at least 1", session.ErrInvalidInput)
	}

	from, err := dateFlag(cmd, "from")
	if err != nil {
		return req, err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return req, err
	}
	req.StartDate, req.EndDate = from, to
	return req, nil
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	t, err := types.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %v", session.ErrInvalidInput, name, err)
	}
	return &t, nil
}
