// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session runs one analysis submission at a time: it validates the
// request, calls the analysis service, builds the report, and replaces the
// displayed state wholesale.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/arxtrend/internal/client"
	"github.com/pdiddy/arxtrend/internal/render"
	"github.com/pdiddy/arxtrend/pkg/types"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")

	// ErrInvalidInput is returned when the request fails validation.
	// The wrapped *ValidationError names the offending fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Failure is a submission that reached the service but produced no report.
// Message is the only text shown to the user; Err is the logged cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Analyzer performs one analysis call. *client.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req types.ResearchRequest) (types.ResearchResponse, error)
}

// Options configures report building.
type Options struct {
	Render render.Options
}

// State is a snapshot of what the user sees. Report and Error are never
// both set.
type State struct {
	Loading bool
	Report  *render.Report
	Error   string
}

// Session owns the single in-flight slot and the displayed state.
type Session struct {
	analyzer  Analyzer
	opts      Options
	log       zerolog.Logger
	validator *Validator
	inflight  *semaphore.Weighted

	mu    sync.Mutex
	state State
}

// New creates a session around analyzer.
func New(analyzer Analyzer, opts Options, log zerolog.Logger) *Session {
	return &Session{
		analyzer:  analyzer,
		opts:      opts,
		log:       log,
		validator: NewValidator(),
		inflight:  semaphore.NewWeighted(1),
	}
}

// Submit validates req and, if no other submission is running, performs
// the analysis. Validation failures leave the displayed state untouched.
// A service or aggregation failure clears any previous report and returns
// a *Failure carrying client.FailureMessage.
func (s *Session) Submit(ctx context.Context, req types.ResearchRequest) (render.Report, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if err := s.validator.Struct(req); err != nil {
		return render.Report{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if req.HasDateRange() && req.StartDate.After(*req.EndDate) {
		s.log.Warn().
			Time("start_date", *req.StartDate).
			Time("end_date", *req.EndDate).
			Msg("start date is after end date; sending as given")
	}

	if !s.inflight.TryAcquire(1) {
		return render.Report{}, ErrBusy
	}
	defer s.inflight.Release(1)

	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	report, err := s.run(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = State{Error: client.FailureMessage}
		return render.Report{}, &Failure{Message: client.FailureMessage, Err: err}
	}
	s.state = State{Report: &report}
	return report, nil
}

func (s *Session) run(ctx context.Context, req types.ResearchRequest) (render.Report, error) {
	resp, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		// The client logs transport detail itself.
		return render.Report{}, err
	}

	report, err := render.Build(resp, s.opts.Render)
	if err != nil {
		s.log.Error().Err(err).Str("topic", req.Topic).Msg("building report")
		return render.Report{}, err
	}
	s.log.Debug().
		Str("topic", req.Topic).
		Int("trends", len(report.Trends)).
		Int("buckets", len(report.Chart.Labels)).
		Msg("report built")
	return report, nil
}

// State returns a snapshot of the displayed state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Report != nil {
		r := *st.Report
		st.Report = &r
	}
	return st
}
