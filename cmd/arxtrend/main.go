// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxtrend CLI. arxtrend submits a
// research topic to the paper analysis service and renders the keyword
// trends, summary, and related papers it returns.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxtrend/internal/logging"
	"github.com/pdiddy/arxtrend/internal/secrets"
	"github.com/pdiddy/arxtrend/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("failure already reported")

var (
	// cfg is the effective configuration, resolved before each command runs.
	cfg types.Config

	// logger writes diagnostics to stderr.
	logger = zerolog.Nop()

	// loadedSecrets holds credentials loaded from the secrets directory.
	loadedSecrets map[string]string
)

// apiToken returns configured if set (config file or ARXTREND_SERVICE_API_TOKEN),
// otherwise the token from the loaded secrets.
func apiToken(configured string) string {
	if configured != "" {
		return configured
	}
	return secrets.APIToken(loadedSecrets)
}

// rootCmd is the base command for the arxtrend CLI.
var rootCmd = &cobra.Command{
	Use:   "arxtrend",
	Short: "Keyword trend analysis for research papers",
	Long: `arxtrend asks the research analysis service to study papers on a topic
and shows how the topic's keywords evolved over time, a numbered trend
summary, and the papers that were analyzed.

Keyword frequencies are grouped by month, quarter, half-year, or year and
rendered as a terminal chart, JSON, YAML, or Markdown.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.New(cfg.Log, cmd.ErrOrStderr())
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info().Str("file", f).Msg("using config file")
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		cfg.Service.APIToken = apiToken(cfg.Service.APIToken)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./arxtrend.yaml or ~/.config/arxtrend/arxtrend.yaml)")
	pf.String("secrets-dir", secrets.DefaultDir, "directory of secret files")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.String("log-format", "", "log format: console or json")
	pf.StringP("granularity", "g", "", "time bucket: month, quarter, half-year, or year")
	pf.String("order", "", "bucket order: encounter or ascending")
	pf.StringP("format", "o", "", "output format: text, json, yaml, or markdown")
	pf.String("color", "", "color output: auto, always, or never")
	pf.Int("papers", 0, "list at most this many papers (0 lists all)")

	bindFlags(viper.GetViper(), pf, map[string]string{
		"log.level":         "log-level",
		"log.format":        "log-format",
		"trend.granularity": "granularity",
		"trend.order":       "order",
		"output.format":     "format",
		"output.color":      "color",
		"output.max_papers": "papers",
	})
}

func initConfig() {
	v := viper.GetViper()
	setDefaults(v)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("arxtrend")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "arxtrend"))
		}
	}

	v.SetEnvPrefix("ARXTREND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
