// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout bounds one analysis call end to end. The service runs an LLM
	// per paper, so the default is generous (5m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "arxtrend/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig locates the analysis service.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the service root; the client posts to BaseURL + "/analyze".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the number of extra attempts on transient failures.
	// Zero (the default) sends exactly one request per submission.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// APIToken is an optional bearer token. Usually loaded from .secrets/.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`
}

// TrendConfig controls temporal aggregation of keyword trends.
type TrendConfig struct {
	// Granularity is month, quarter, half-year, or year.
	Granularity string `json:"granularity" yaml:"granularity"`

	// Order is "encounter" (first-seen bucket order) or "ascending".
	Order string `json:"order" yaml:"order"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Format is text, json, yaml, or markdown.
	Format string `json:"format" yaml:"format"`

	// Color is auto, always, or never. Applies to the text format only.
	Color string `json:"color" yaml:"color"`

	// MaxPapers limits how many papers the text and markdown views list.
	// Zero lists all of them.
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is trace, debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups every setting arxtrend reads from file, env, and flags.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Trend   TrendConfig   `json:"trend" yaml:"trend"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
