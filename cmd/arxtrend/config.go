// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxtrend/internal/httputil"
	"github.com/pdiddy/arxtrend/internal/render"
	"github.com/pdiddy/arxtrend/internal/trend"
	"github.com/pdiddy/arxtrend/pkg/types"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 5 * time.Minute
	defaultUserAgent = "arxtrend/0.1"
)

// setDefaults registers the value of every key when no file, env var, or
// flag sets it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", defaultBaseURL)
	v.SetDefault("service.timeout", defaultTimeout)
	v.SetDefault("service.user_agent", defaultUserAgent)
	v.SetDefault("service.max_retries", 0)
	v.SetDefault("service.api_token", "")
	v.SetDefault("trend.granularity", string(trend.Month))
	v.SetDefault("trend.order", string(trend.OrderEncounter))
	v.SetDefault("output.format", string(render.FormatText))
	v.SetDefault("output.color", "auto")
	v.SetDefault("output.max_papers", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// bindFlags binds config keys to flags in fs. A flag only overrides the
// key when it is set on the command line.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// loadConfig resolves the effective configuration from v.
func loadConfig(v *viper.Viper) (types.Config, error) {
	c := types.Config{
		Service: types.ServiceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("service.timeout"),
				UserAgent: v.GetString("service.user_agent"),
			},
			BaseURL:    v.GetString("service.base_url"),
			MaxRetries: v.GetInt("service.max_retries"),
			APIToken:   v.GetString("service.api_token"),
		},
		Trend: types.TrendConfig{
			Granularity: v.GetString("trend.granularity"),
			Order:       v.GetString("trend.order"),
		},
		Output: types.OutputConfig{
			Format:    v.GetString("output.format"),
			Color:     v.GetString("output.color"),
			MaxPapers: v.GetInt("output.max_papers"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if c.Service.BaseURL == "" {
		return c, fmt.Errorf("service.base_url must be set")
	}
	if c.Service.MaxRetries < 0 || c.Service.MaxRetries > httputil.MaxRetriesCap {
		return c, fmt.Errorf("service.max_retries must be between 0 and %d, got %d",
			httputil.MaxRetriesCap, c.Service.MaxRetries)
	}
	if c.Output.MaxPapers < 0 {
		return c, fmt.Errorf("output.max_papers must not be negative, got %d", c.Output.MaxPapers)
	}
	return c, nil
}

// outputSettings are the parsed presentation choices shared by analyze
// and render.
type outputSettings struct {
	render render.Options
	format render.Format
	color  render.ColorMode
	style  render.Style
}

func parseOutputSettings(c types.Config) (outputSettings, error) {
	g, err := trend.ParseGranularity(c.Trend.Granularity)
	if err != nil {
		return outputSettings{}, err
	}
	order, err := trend.ParseOrder(c.Trend.Order)
	if err != nil {
		return outputSettings{}, err
	}
	format, err := render.ParseFormat(c.Output.Format)
	if err != nil {
		return outputSettings{}, err
	}
	color, err := render.ParseColorMode(c.Output.Color)
	if err != nil {
		return outputSettings{}, err
	}
	return outputSettings{
		render: render.Options{Granularity: g, Order: order},
		format: format,
		color:  color,
		style:  render.Style{MaxPapers: c.Output.MaxPapers},
	}, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration arxtrend would use after merging defaults,
the config file, ARXTREND_* environment variables, and flags. The API token
is redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := cfg
		if shown.Service.APIToken != "" {
			shown.Service.APIToken = "<redacted>"
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(shown); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
