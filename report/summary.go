package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mweagle/doegen/doe"
	"github.com/mweagle/doegen/stats"
)

// Summary is everything the diagram exports describe about one design.
type Summary struct {
	Name       string
	Parameters []string
	Design     *doe.Design
	Statistics *stats.DesignStatistics

	// PlotPath is the optional scatter plot image shown in the diagram.
	PlotPath string
	Created  time.Time
}

// NewSummary computes the design statistics for names and design.
func NewSummary(name string, names []string, design *doe.Design, plotPath string) *Summary {
	return &Summary{
		Name:       name,
		Parameters: names,
		Design:     design,
		Statistics: stats.ForDesign(design.Space, design.Samples, stats.DefaultPercentiles),
		PlotPath:   plotPath,
		Created:    time.Now(),
	}
}

// aggregatedStatsFormatter renders column statistics as a one line label.
func aggregatedStatsFormatter(aggStats *stats.AggregatedStatistics) string {
	label := fmt.Sprintf("μ=%.4g, σ=%.4g, min=%.4g, max=%.4g",
		aggStats.Mean,
		aggStats.StdDev,
		aggStats.Min,
		aggStats.Max)
	if len(aggStats.Percentiles) != 0 {
		values := make([]string, len(aggStats.Percentiles))
		for i, eachPercentile := range aggStats.Percentiles {
			values[i] = fmt.Sprintf("p%g=%.4g", eachPercentile.P, eachPercentile.Val)
		}
		label = fmt.Sprintf("%s (%s)", label, strings.Join(values, ", "))
	}
	return label
}

// sortedOptions returns the option keys in sorted order.
func sortedOptions(options map[string]interface{}) []string {
	keys := make([]string, 0, len(options))
	for eachKey := range options {
		keys = append(keys, eachKey)
	}
	sort.Strings(keys)
	return keys
}
