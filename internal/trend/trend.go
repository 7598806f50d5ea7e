// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trend reduces fine-grained keyword time series into coarser
// calendar buckets (month, quarter, half-year, year) for charting.
//
// Bucket keys are computed in UTC so results do not depend on the
// viewer's locale. Aggregation is a lossy one-way reduction.
package trend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxtrend/pkg/types"
)

// Granularity selects the bucket width.
type Granularity string

const (
	Month    Granularity = "month"
	Quarter  Granularity = "quarter"
	HalfYear Granularity = "half-year"
	Year     Granularity = "year"
)

// Granularities lists the supported values from finest to coarsest.
var Granularities = []Granularity{Month, Quarter, HalfYear, Year}

// ParseGranularity maps a user-supplied name to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month", "monthly":
		return Month, nil
	case "quarter", "quarterly":
		return Quarter, nil
	case "half-year", "halfyear", "half":
		return HalfYear, nil
	case "year", "yearly", "annual":
		return Year, nil
	default:
		return "", fmt.Errorf("unknown granularity %q: use month, quarter, half-year, or year", s)
	}
}

// Order selects the ordering of output buckets.
type Order string

const (
	// OrderEncounter keeps buckets in the order a forward pass first
	// produces them.
	OrderEncounter Order = "encounter"

	// OrderAscending sorts bucket labels ascending. Labels of a single
	// granularity sort chronologically.
	OrderAscending Order = "ascending"
)

// ParseOrder maps a user-supplied name to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "encounter", "input":
		return OrderEncounter, nil
	case "ascending", "asc", "sorted":
		return OrderAscending, nil
	default:
		return "", fmt.Errorf("unknown bucket order %q: use encounter or ascending", s)
	}
}

// ErrInvalidTimestamp matches any *InvalidTimestampError.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ErrLengthMismatch is returned when a trend's timestamps and frequencies
// are not positionally paired.
var ErrLengthMismatch = errors.New("timestamps and frequency lengths differ")

// InvalidTimestampError reports the first unparseable timestamp in a series.
type InvalidTimestampError struct {
	Index int
	Value string
	Err   error
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q at index %d: %v", e.Value, e.Index, e.Err)
}

// Is reports ErrInvalidTimestamp as a match.
func (e *InvalidTimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

func (e *InvalidTimestampError) Unwrap() error { return e.Err }

// Point is one raw observation.
type Point struct {
	Timestamp string  `json:"timestamp" yaml:"timestamp"`
	Value     float64 `json:"value" yaml:"value"`
}

// Bucket is one aggregated observation.
type Bucket struct {
	Label string  `json:"label" yaml:"label"`
	Total float64 `json:"total" yaml:"total"`
}

// Series is an aggregated keyword trend.
type Series struct {
	Keyword string   `json:"keyword" yaml:"keyword"`
	Buckets []Bucket `json:"buckets" yaml:"buckets"`
}

// Total returns the sum of all bucket totals.
func (s Series) Total() float64 {
	var sum float64
	for _, b := range s.Buckets {
		sum += b.Total
	}
	return sum
}

// Peak returns the bucket with the largest total. The first one wins ties.
// ok is false for an empty series.
func (s Series) Peak() (b Bucket, ok bool) {
	for i, c := range s.Buckets {
		if i == 0 || c.Total > b.Total {
			b = c
		}
	}
	return b, len(s.Buckets) > 0
}

// BucketKey returns the bucket label for t at granularity g, in UTC.
func BucketKey(t time.Time, g Granularity) string {
	t = t.UTC()
	year := t.Year()
	month0 := int(t.Month()) - 1

	switch g {
	case Quarter:
		return fmt.Sprintf("%04d-Q%d", year, month0/3+1)
	case HalfYear:
		if month0 < 6 {
			return fmt.Sprintf("%04d-H1", year)
		}
		return fmt.Sprintf("%04d-H2", year)
	case Year:
		return fmt.Sprintf("%04d", year)
	default:
		return fmt.Sprintf("%04d-%02d", year, month0+1)
	}
}

// Aggregate sums point values per bucket in a single forward pass. Input
// need not be sorted. Empty input yields an empty, non-nil result. The
// first unparseable timestamp aborts the whole series.
func Aggregate(points []Point, g Granularity, order Order) ([]Bucket, error) {
	buckets := make([]Bucket, 0, len(points))
	index := make(map[string]int, len(points))

	for i, p := range points {
		t, err := types.ParseDate(p.Timestamp)
		if err != nil {
			return nil, &InvalidTimestampError{Index: i, Value: p.Timestamp, Err: err}
		}
		key := BucketKey(t, g)
		if idx, ok := index[key]; ok {
			buckets[idx].Total += p.Value
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, Bucket{Label: key, Total: p.Value})
	}

	if order == OrderAscending {
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].Label < buckets[j].Label
		})
	}
	return buckets, nil
}

// PointsFromTrend pairs a trend's timestamps with its frequencies.
func PointsFromTrend(kt types.KeywordTrend) ([]Point, error) {
	if len(kt.Timestamps) != len(kt.Frequency) {
		return nil, fmt.Errorf("keyword %q: %w (%d timestamps, %d values)",
			kt.Keyword, ErrLengthMismatch, len(kt.Timestamps), len(kt.Frequency))
	}
	points := make([]Point, len(kt.Timestamps))
	for i, ts := range kt.Timestamps {
		points[i] = Point{Timestamp: ts, Value: kt.Frequency[i]}
	}
	return points, nil
}

// AggregateTrend aggregates one keyword trend.
func AggregateTrend(kt types.KeywordTrend, g Granularity, order Order) (Series, error) {
	points, err := PointsFromTrend(kt)
	if err != nil {
		return Series{}, err
	}
	buckets, err := Aggregate(points, g, order)
	if err != nil {
		return Series{}, fmt.Errorf("keyword %q: %w", kt.Keyword, err)
	}
	return Series{Keyword: kt.Keyword, Buckets: buckets}, nil
}
