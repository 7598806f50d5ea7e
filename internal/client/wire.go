// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/arxtrend/pkg/types"
)

// The analysis service speaks snake_case. These structs mirror its
// documents exactly; nothing outside this package sees them.

type wireRequest struct {
	Topic     string `json:"topic"`
	MaxPapers *int   `json:"max_papers,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type wireKeywordTrend struct {
	Keyword    string    `json:"keyword"`
	Frequency  []float64 `json:"frequency"`
	Timestamps []string  `json:"timestamps"`
}

type wirePaper struct {
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date"`
	URL           string   `json:"url"`
	Keywords      []string `json:"keywords"`
}

type wireResponse struct {
	Topic             string             `json:"topic"`
	TotalPapers       *int               `json:"total_papers"`
	KeywordTrends     []wireKeywordTrend `json:"keyword_trends"`
	TopKeywords       []string           `json:"top_keywords"`
	Papers            []wirePaper        `json:"papers"`
	TrendSummary      string             `json:"trend_summary"`
	TimePeriod        string             `json:"time_period"`
	ResearchEvolution string             `json:"research_evolution"`
}

func toWireRequest(req types.ResearchRequest) wireRequest {
	w := wireRequest{Topic: req.Topic}
	if req.MaxPapers > 0 {
		n := req.MaxPapers
		w.MaxPapers = &n
	}
	if req.StartDate != nil {
		w.StartDate = req.StartDate.UTC().Format(time.RFC3339)
	}
	if req.EndDate != nil {
		w.EndDate = req.EndDate.UTC().Format(time.RFC3339)
	}
	return w
}

// toResponse translates a decoded body into the canonical model and
// checks the invariants the renderer relies on.
func (w wireResponse) toResponse() (types.ResearchResponse, error) {
	if w.TotalPapers == nil {
		return types.ResearchResponse{}, fmt.Errorf("missing total_papers")
	}
	if *w.TotalPapers < 0 {
		return types.ResearchResponse{}, fmt.Errorf("negative total_papers %d", *w.TotalPapers)
	}

	resp := types.ResearchResponse{
		Topic:             w.Topic,
		TotalPapers:       *w.TotalPapers,
		TopKeywords:       w.TopKeywords,
		TrendSummary:      w.TrendSummary,
		TimePeriod:        w.TimePeriod,
		ResearchEvolution: w.ResearchEvolution,
		KeywordTrends:     make([]types.KeywordTrend, 0, len(w.KeywordTrends)),
		Papers:            make([]types.Paper, 0, len(w.Papers)),
	}

	seen := make(map[string]bool, len(w.KeywordTrends))
	for _, kt := range w.KeywordTrends {
		if seen[kt.Keyword] {
			return types.ResearchResponse{}, fmt.Errorf("duplicate keyword trend %q", kt.Keyword)
		}
		seen[kt.Keyword] = true
		if len(kt.Timestamps) != len(kt.Frequency) {
			return types.ResearchResponse{}, fmt.Errorf("keyword %q: %d timestamps but %d frequencies",
				kt.Keyword, len(kt.Timestamps), len(kt.Frequency))
		}
		for _, f := range kt.Frequency {
			if f < 0 {
				return types.ResearchResponse{}, fmt.Errorf("keyword %q: negative frequency %v", kt.Keyword, f)
			}
		}
		resp.KeywordTrends = append(resp.KeywordTrends, types.KeywordTrend{
			Keyword:    kt.Keyword,
			Timestamps: kt.Timestamps,
			Frequency:  kt.Frequency,
		})
	}

	for i, p := range w.Papers {
		var published time.Time
		if p.PublishedDate != "" {
			t, err := types.ParseDate(p.PublishedDate)
			if err != nil {
				return types.ResearchResponse{}, fmt.Errorf("paper %d: published_date: %w", i, err)
			}
			published = t
		}
		resp.Papers = append(resp.Papers, types.Paper{
			Title:         p.Title,
			Abstract:      p.Abstract,
			Authors:       p.Authors,
			PublishedDate: published,
			URL:           p.URL,
			Keywords:      p.Keywords,
		})
	}

	return resp, nil
}

// DecodeResponse parses a snake_case service response body, such as one
// saved from an earlier call, and applies the same checks as Analyze.
func DecodeResponse(data []byte) (types.ResearchResponse, error) {
	var body wireResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return types.ResearchResponse{}, fmt.Errorf("decoding response: %w", err)
	}
	resp, err := body.toResponse()
	if err != nil {
		return types.ResearchResponse{}, fmt.Errorf("invalid response: %w", err)
	}
	return resp, nil
}
