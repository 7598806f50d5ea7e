// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxtrend/internal/trend"
	"github.com/pdiddy/arxtrend/pkg/types"
)

func sampleResponse() types.ResearchResponse {
	return types.ResearchResponse{
		Topic:       "diffusion models",
		TotalPapers: 3,
		KeywordTrends: []types.KeywordTrend{
			{
				Keyword:    "score matching",
				Timestamps: []string{"2024-01-15", "2024-01-28", "2024-02-03"},
				Frequency:  []float64{3, 2, 5},
			},
			{
				Keyword:    "latent diffusion",
				Timestamps: []string{"2023-12-01", "2024-02-10"},
				Frequency:  []float64{1, 4},
			},
		},
		TopKeywords: []string{"latent diffusion", "score matching"},
		Papers: []types.Paper{
			{
				Title:         "Scaling Latent Diffusion",
				Abstract:      "We scale   latent\ndiffusion models.",
				Authors:       []string{"A. Author", "B. Author"},
				PublishedDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
				URL:           "http://arxiv.org/abs/2402.00001v1",
				Keywords:      []string{"latent diffusion"},
			},
			{Title: "Score Matching Revisited", URL: "http://arxiv.org/abs/2401.00002v1"},
		},
		TrendSummary:      "1. Score matching peaks in February.\n2. Latent diffusion is rising.",
		TimePeriod:        "2023-12 to 2024-02",
		ResearchEvolution: "Methodology:\n- Pixel space to latent space\nSampling got faster.\n\nApplications\n- Video",
	}
}

// --- Build ---

func TestBuild_EncounterOrder(t *testing.T) {
	r, err := Build(sampleResponse(), Options{Granularity: trend.Month, Order: trend.OrderEncounter})
	require.NoError(t, err)

	assert.Equal(t, "diffusion models", r.Topic)
	assert.Equal(t, trend.Month, r.Granularity)
	require.Len(t, r.Trends, 2)
	assert.Equal(t, "score matching", r.Trends[0].Keyword)
	assert.Equal(t, []trend.Bucket{{Label: "2024-01", Total: 5}, {Label: "2024-02", Total: 5}}, r.Trends[0].Buckets)

	// Second keyword introduces 2023-12 after the first keyword's labels.
	assert.Equal(t, []string{"2024-01", "2024-02", "2023-12"}, r.Chart.Labels)
	require.Len(t, r.Chart.Series, 2)
	assert.Equal(t, []float64{5, 5, 0}, r.Chart.Series[0].Values)
	assert.Equal(t, []float64{0, 4, 1}, r.Chart.Series[1].Values)
	assert.Equal(t, 10.0, r.Chart.Series[0].Total)
	assert.Equal(t, "2024-01", r.Chart.Series[0].Peak)
	assert.Equal(t, "2024-02", r.Chart.Series[1].Peak)

	require.Len(t, r.Summary, 2)
	assert.Equal(t, "Latent diffusion is rising.", r.Summary[1].Text)
	require.Len(t, r.Evolution, 2)
	assert.Equal(t, "Methodology", r.Evolution[0].Heading)
}

func TestBuild_AscendingOrder(t *testing.T) {
	r, err := Build(sampleResponse(), Options{Granularity: trend.Month, Order: trend.OrderAscending})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, r.Chart.Labels)
	assert.Equal(t, []float64{0, 5, 5}, r.Chart.Series[0].Values)
	assert.Equal(t, []float64{1, 0, 4}, r.Chart.Series[1].Values)
}

func TestBuild_CoarseGranularity(t *testing.T) {
	r, err := Build(sampleResponse(), Options{Granularity: trend.Year, Order: trend.OrderAscending})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023", "2024"}, r.Chart.Labels)
	assert.Equal(t, []float64{0, 10}, r.Chart.Series[0].Values)
	assert.Equal(t, []float64{1, 4}, r.Chart.Series[1].Values)
}

func TestBuild_Defaults(t *testing.T) {
	r, err := Build(sampleResponse(), Options{})
	require.NoError(t, err)
	assert.Equal(t, trend.Month, r.Granularity)
	assert.Equal(t, trend.OrderEncounter, r.Order)
}

func TestBuild_InvalidTimestampAbortsWholeReport(t *testing.T) {
	resp := sampleResponse()
	resp.KeywordTrends[1].Timestamps[0] = "not-a-date"

	r, err := Build(resp, Options{Granularity: trend.Month})
	require.Error(t, err)
	assert.ErrorIs(t, err, trend.ErrInvalidTimestamp)
	assert.Empty(t, r.Topic)
	assert.Empty(t, r.Trends)
}

func TestBuild_NoTrends(t *testing.T) {
	r, err := Build(types.ResearchResponse{Topic: "empty"}, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Chart.Labels)
	assert.Empty(t, r.Chart.Series)
	assert.Zero(t, r.Chart.Max())
}

// --- Sparkline ---

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▅█", Sparkline([]float64{0, 5, 10}, 10))
	assert.Equal(t, "▁▁", Sparkline([]float64{0, 0}, 0))
	assert.Equal(t, "█", Sparkline([]float64{20}, 10))
	assert.Equal(t, "", Sparkline(nil, 10))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", FormatValue(5))
	assert.Equal(t, "2.5", FormatValue(2.5))
}

// --- Formats ---

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatText,
		"text":     FormatText,
		"JSON":     FormatJSON,
		"yml":      FormatYAML,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func buildSample(t *testing.T) Report {
	t.Helper()
	r, err := Build(sampleResponse(), Options{Granularity: trend.Month, Order: trend.OrderAscending})
	require.NoError(t, err)
	return r
}

func TestWrite_Text(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, ColorNever)
	require.NoError(t, p.Write(buildSample(t), FormatText, Style{}))

	s := out.String()
	assert.Contains(t, s, "Research Analysis: diffusion models")
	assert.Contains(t, s, "Time Period: 2023-12 to 2024-02")
	assert.Contains(t, s, " 1. Score matching peaks in February.")
	assert.Contains(t, s, "Research Evolution")
	assert.Contains(t, s, "  • Pixel space to latent space")
	assert.Contains(t, s, "  Sampling got faster.")
	assert.Contains(t, s, "Keyword Trends")
	assert.Contains(t, s, "score matching")
	assert.Contains(t, s, "2023-12")
	assert.Contains(t, s, "[latent diffusion] [score matching]")
	assert.Contains(t, s, "Related Papers (3)")
	assert.Contains(t, s, "A. Author, B. Author · 2024-02-10")
	assert.Contains(t, s, "We scale latent diffusion models.")
	assert.NotContains(t, s, "\x1b[", "no ANSI escapes when colors are off")
	assert.Empty(t, errOut.String())

	// Keyword order is preserved in the chart rows.
	assert.Less(t, strings.Index(s, "score matching  "), strings.Index(s, "latent diffusion  "))
}

func TestWrite_TextColors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorAlways)
	require.NoError(t, p.Write(buildSample(t), FormatText, Style{}))
	assert.Contains(t, out.String(), "\x1b[")
}

func TestWrite_TextLimitsPapers(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorNever)
	require.NoError(t, p.Write(buildSample(t), FormatText, Style{MaxPapers: 1}))
	assert.Contains(t, out.String(), "Scaling Latent Diffusion")
	assert.NotContains(t, out.String(), "Score Matching Revisited")
	assert.Contains(t, out.String(), "... and 1 more")
}

func TestWrite_TextEmptyReport(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorNever)
	require.NoError(t, p.Write(Report{Topic: "nothing"}, FormatText, Style{}))
	assert.Contains(t, out.String(), "No summary provided.")
	assert.Contains(t, out.String(), "No keyword trends.")
	assert.Contains(t, out.String(), "No papers.")
}

func TestWrite_JSON(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorNever)
	require.NoError(t, p.Write(buildSample(t), FormatJSON, Style{}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "diffusion models", doc["topic"])
	assert.Equal(t, float64(3), doc["totalPapers"])
	chart := doc["chart"].(map[string]any)
	assert.Equal(t, []any{"2023-12", "2024-01", "2024-02"}, chart["labels"])
}

func TestWrite_YAML(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorNever)
	require.NoError(t, p.Write(buildSample(t), FormatYAML, Style{}))

	var doc struct {
		Topic       string   `yaml:"topic"`
		TopKeywords []string `yaml:"top_keywords"`
		Chart       Chart    `yaml:"chart"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "diffusion models", doc.Topic)
	assert.Equal(t, []string{"latent diffusion", "score matching"}, doc.TopKeywords)
	assert.Equal(t, []float64{0, 5, 5}, doc.Chart.Series[0].Values)
}

func TestWrite_Markdown(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ColorNever)
	require.NoError(t, p.Write(buildSample(t), FormatMarkdown, Style{}))

	s := out.String()
	assert.Contains(t, s, "# Research Analysis: diffusion models")
	assert.Contains(t, s, "1. Score matching peaks in February.\n2. Latent diffusion is rising.\n")
	assert.Contains(t, s, "### Methodology")
	assert.Contains(t, s, "- Pixel space to latent space")
	assert.Contains(t, s, "```mermaid\nxychart-beta\n")
	assert.Contains(t, s, `x-axis ["2023-12", "2024-01", "2024-02"]`)
	assert.Contains(t, s, "line [0, 5, 5]")
	assert.Contains(t, s, "line [1, 0, 4]")
	assert.Contains(t, s, "| Period | score matching | latent diffusion |")
	assert.Contains(t, s, "| 2024-02 | 5 | 4 |")
	assert.Contains(t, s, "1. **[Scaling Latent Diffusion](http://arxiv.org/abs/2402.00001v1)**, A. Author, B. Author (2024-02-10)")
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a \| b`, escapeCell("a | b"))
}

// --- Printer ---

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, ResolveColors(ColorAlways))
	assert.False(t, ResolveColors(ColorNever))
	assert.False(t, ResolveColors(ColorAuto))
}

func TestFailureBanner(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, ColorNever)
	p.Failure("Failed to analyze research. Please try again.")
	assert.Equal(t, "[ERROR] Failed to analyze research. Please try again.\n", errOut.String())
	assert.Empty(t, out.String())
}
