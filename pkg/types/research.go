// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ResearchRequest is the query submitted to the analysis service.
type ResearchRequest struct {
	// Topic is the analysis subject. Required and non-blank.
	Topic string `json:"topic" yaml:"topic" validate:"required,topic"`

	// MaxPapers bounds the number of papers the service considers.
	// Zero means absent; the service applies its own default.
	MaxPapers int `json:"maxPapers,omitempty" yaml:"max_papers,omitempty" validate:"omitempty,min=1,max=1000"`

	// StartDate is the optional lower publication bound.
	StartDate *time.Time `json:"startDate,omitempty" yaml:"start_date,omitempty"`

	// EndDate is the optional upper publication bound. The service is
	// authoritative on StartDate <= EndDate.
	EndDate *time.Time `json:"endDate,omitempty" yaml:"end_date,omitempty"`
}

// HasDateRange reports whether both bounds are set.
func (r ResearchRequest) HasDateRange() bool {
	return r.StartDate != nil && r.EndDate != nil
}

// KeywordTrend is the time series of occurrence counts for one keyword.
// Timestamps and Frequency are positionally paired and of equal length.
type KeywordTrend struct {
	Keyword    string    `json:"keyword" yaml:"keyword"`
	Timestamps []string  `json:"timestamps" yaml:"timestamps"`
	Frequency  []float64 `json:"frequency" yaml:"frequency"`
}

// Paper is one paper the analysis considered.
type Paper struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublishedDate is the publication or preprint date.
	PublishedDate time.Time `json:"publishedDate" yaml:"published_date"`

	// URL links to the paper landing page.
	URL string `json:"url" yaml:"url"`

	// Keywords are the tags extracted for this paper. Duplicates are
	// tolerated.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ResearchResponse holds the analysis results for one request.
type ResearchResponse struct {
	// Topic echoes the request subject.
	Topic string `json:"topic" yaml:"topic"`

	// TotalPapers is the number of papers the analysis considered.
	TotalPapers int `json:"totalPapers" yaml:"total_papers"`

	// KeywordTrends is ordered by server ranking; the order is preserved
	// through rendering.
	KeywordTrends []KeywordTrend `json:"keywordTrends" yaml:"keyword_trends"`

	// TopKeywords is ordered independently of KeywordTrends.
	TopKeywords []string `json:"topKeywords" yaml:"top_keywords"`

	Papers []Paper `json:"papers" yaml:"papers"`

	// TrendSummary is free text, conventionally numbered sentences.
	TrendSummary string `json:"trendSummary" yaml:"trend_summary"`

	// TimePeriod labels the analysis window (e.g. "2024-01 to 2024-06").
	TimePeriod string `json:"timePeriod" yaml:"time_period"`

	// ResearchEvolution is an optional narrative of how the field changed,
	// in blank-line separated sections.
	ResearchEvolution string `json:"researchEvolution,omitempty" yaml:"research_evolution,omitempty"`
}
