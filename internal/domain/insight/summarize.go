package insight

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// coreMetricIDs is the fixed set of core-vitals audits surfaced as metrics,
// in presentation order regardless of payload key order.
var coreMetricIDs = [...]string{
	"first-contentful-paint",
	"largest-contentful-paint",
	"total-blocking-time",
	"cumulative-layout-shift",
	"speed-index",
}

// Summarize reduces a raw audit payload into the compact Summary fed to the
// language model. It never mutates its input and is total over well-formed
// payloads: missing optional fields are omitted, never an error. A nil
// payload is the only failure, guarding against programmer error.
func Summarize(payload *AuditPayload) (Summary, error) {
	if payload == nil {
		return Summary{}, errors.New("audit payload must not be nil")
	}

	var out Summary
	lhr := payload.LighthouseResult
	if lhr == nil {
		return out, nil
	}

	if cat := lhr.Categories.Performance; cat != nil && cat.Score != nil {
		out.PerformanceScore = formatScore(*cat.Score)
	}
	out.Metrics = coreMetrics(lhr.Audits)
	out.Opportunities = collectOpportunities(lhr.Audits)

	diag := collectDiagnostics(lhr.Audits)
	if diag.CriticalRequestChains != "" || diag.ResourceSummary != "" {
		out.Diagnostics = &diag
	}
	return out, nil
}

// formatScore scales the 0-1 fraction to 0-100 with zero decimal places.
// math.Round keeps half-values rounding away from zero (0.5 -> 1).
func formatScore(score float64) string {
	return strconv.Itoa(int(math.Round(score * 100)))
}

func coreMetrics(audits AuditMap) []Metric {
	var metrics []Metric
	for _, id := range coreMetricIDs {
		audit, ok := audits.Get(id)
		if !ok || audit.Title == "" || audit.DisplayValue == "" {
			continue
		}
		metrics = append(metrics, Metric{
			Title:        audit.Title,
			DisplayValue: audit.DisplayValue,
		})
	}
	return metrics
}

func collectOpportunities(audits AuditMap) []Opportunity {
	var opportunities []Opportunity
	for _, id := range audits.IDs {
		audit := audits.Entries[id]
		details := audit.Details
		if details == nil || details.Type != "opportunity" {
			continue
		}
		if details.OverallSavingsMs == nil || *details.OverallSavingsMs <= 0 {
			continue
		}
		opportunities = append(opportunities, Opportunity{
			Title:            audit.Title,
			Description:      audit.Description,
			PotentialSavings: formatSavings(*details.OverallSavingsMs),
		})
	}
	return opportunities
}

func formatSavings(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64) + " ms"
}

func collectDiagnostics(audits AuditMap) Diagnostics {
	var diag Diagnostics
	if audit, ok := audits.Get("critical-request-chains"); ok && audit.Details != nil {
		diag.CriticalRequestChains = longestChainSentence(audit.Details.Chains)
	}
	if audit, ok := audits.Get("resource-summary"); ok && audit.Details != nil {
		diag.ResourceSummary = renderResourceSummary(audit.Details.Items)
	}
	return diag
}

type chainStats struct {
	requests   int
	durationMs float64
}

// longestChainSentence renders the longest chain by duration. The sort is
// stable, so equal durations keep the payload's own order.
func longestChainSentence(chains ChainMap) string {
	if len(chains.IDs) == 0 {
		return ""
	}

	stats := make([]chainStats, 0, len(chains.IDs))
	for _, id := range chains.IDs {
		chain := chains.Entries[id]
		stats = append(stats, chainStats{
			requests:   1 + len(chain.Children),
			durationMs: (chain.Request.EndTime - chain.Request.StartTime) * 1000,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].durationMs > stats[j].durationMs
	})

	longest := stats[0]
	noun := "requests"
	if longest.requests == 1 {
		noun = "request"
	}
	return fmt.Sprintf("The longest critical request chain has %d %s and takes %d ms.",
		longest.requests, noun, int64(math.Round(longest.durationMs)))
}

func renderResourceSummary(items []ResourceRow) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, row := range items {
		kb := int64(math.Round(row.TransferSize / 1024))
		lines = append(lines, fmt.Sprintf("- %s: %d requests, %d KB", row.Label, row.RequestCount, kb))
	}
	return strings.Join(lines, "\n")
}
