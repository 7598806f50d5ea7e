// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render is the presentation layer. Build maps a ResearchResponse
// into a Report (aggregated chart series, bucket labels, structured summary
// text); Write renders a Report as a terminal view, JSON, YAML, or Markdown.
package render

import (
	"fmt"
	"sort"

	"github.com/pdiddy/arxtrend/internal/summary"
	"github.com/pdiddy/arxtrend/internal/trend"
	"github.com/pdiddy/arxtrend/pkg/types"
)

// Options controls how trends are aggregated for display.
type Options struct {
	Granularity trend.Granularity
	Order       trend.Order
}

// ChartSeries is one keyword's line on the shared x-axis.
type ChartSeries struct {
	Keyword string    `json:"keyword" yaml:"keyword"`
	Values  []float64 `json:"values" yaml:"values"`
	Total   float64   `json:"total" yaml:"total"`
	Peak    string    `json:"peak,omitempty" yaml:"peak,omitempty"`
}

// Chart aligns every keyword series on one set of bucket labels. A keyword
// with no observation in a bucket reads 0 there.
type Chart struct {
	Labels []string      `json:"labels" yaml:"labels"`
	Series []ChartSeries `json:"series" yaml:"series"`
}

// Max returns the largest value across all series.
func (c Chart) Max() float64 {
	var m float64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Report is everything one render cycle displays.
type Report struct {
	Topic       string            `json:"topic" yaml:"topic"`
	TimePeriod  string            `json:"timePeriod" yaml:"time_period"`
	TotalPapers int               `json:"totalPapers" yaml:"total_papers"`
	Granularity trend.Granularity `json:"granularity" yaml:"granularity"`
	Order       trend.Order       `json:"order" yaml:"order"`
	Summary     []summary.Block   `json:"summary" yaml:"summary"`
	Evolution   []summary.Section `json:"evolution,omitempty" yaml:"evolution,omitempty"`
	Trends      []trend.Series    `json:"trends" yaml:"trends"`
	Chart       Chart             `json:"chart" yaml:"chart"`
	TopKeywords []string          `json:"topKeywords" yaml:"top_keywords"`
	Papers      []types.Paper     `json:"papers" yaml:"papers"`
}

// Build aggregates every keyword trend and structures the summary text.
// Any trend that fails to aggregate aborts the whole build: a report is
// either complete or not produced.
func Build(resp types.ResearchResponse, opts Options) (Report, error) {
	if opts.Granularity == "" {
		opts.Granularity = trend.Month
	}
	if opts.Order == "" {
		opts.Order = trend.OrderEncounter
	}

	series := make([]trend.Series, 0, len(resp.KeywordTrends))
	for _, kt := range resp.KeywordTrends {
		s, err := trend.AggregateTrend(kt, opts.Granularity, opts.Order)
		if err != nil {
			return Report{}, fmt.Errorf("aggregating trends: %w", err)
		}
		series = append(series, s)
	}

	return Report{
		Topic:       resp.Topic,
		TimePeriod:  resp.TimePeriod,
		TotalPapers: resp.TotalPapers,
		Granularity: opts.Granularity,
		Order:       opts.Order,
		Summary:     summary.Blocks(resp.TrendSummary),
		Evolution:   summary.Sections(resp.ResearchEvolution),
		Trends:      series,
		Chart:       buildChart(series, opts.Order),
		TopKeywords: resp.TopKeywords,
		Papers:      resp.Papers,
	}, nil
}

// buildChart takes the union of bucket labels, in encounter order across
// keywords (keyword order preserved) or sorted ascending.
func buildChart(series []trend.Series, order trend.Order) Chart {
	var labels []string
	seen := make(map[string]bool)
	for _, s := range series {
		for _, b := range s.Buckets {
			if !seen[b.Label] {
				seen[b.Label] = true
				labels = append(labels, b.Label)
			}
		}
	}
	if order == trend.OrderAscending {
		sort.Strings(labels)
	}

	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	chart := Chart{Labels: labels, Series: make([]ChartSeries, 0, len(series))}
	for _, s := range series {
		cs := ChartSeries{
			Keyword: s.Keyword,
			Values:  make([]float64, len(labels)),
			Total:   s.Total(),
		}
		for _, b := range s.Buckets {
			cs.Values[pos[b.Label]] = b.Total
		}
		if peak, ok := s.Peak(); ok {
			cs.Peak = peak.Label
		}
		chart.Series = append(chart.Series, cs)
	}
	return chart
}
