// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxtrend/internal/client"
	"github.com/pdiddy/arxtrend/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a saved analysis response",
	Long: `Render reads a response body previously returned by the analysis service
(snake_case JSON) from a file, or from stdin when the argument is "-" or
omitted, and renders it exactly as analyze would. No request is sent.`,
	Example: `  curl -s -X POST localhost:8000/analyze -d '{"topic":"rl"}' > rl.json
  arxtrend render rl.json --granularity year --format markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out, err := parseOutputSettings(cfg)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	resp, err := client.DecodeResponse(data)
	if err != nil {
		return err
	}
	report, err := render.Build(resp, out.render)
	if err != nil {
		return err
	}

	printer := render.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), out.color)
	return printer.Write(report, out.format, out.style)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
