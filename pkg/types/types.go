// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data contracts shared across arxtrend:
// the research request sent to the analysis service, the response it
// returns, and the configuration for each client stage.
package types
