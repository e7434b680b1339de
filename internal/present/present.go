// Package present renders cluster maps as structured summaries or formatted
// textual overviews.
package present

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/semnav/internal/tokenizer"
	"github.com/temirov/semnav/internal/types"
)

const (
	// summarySampleLimit caps the sample paths reported per cluster.
	summarySampleLimit = 10
	// overviewSampleLimit caps the paths listed per overview section.
	overviewSampleLimit = 5

	overviewHeading           = "# Semantic Code Architecture\n\n"
	overviewTotalFilesFormat  = "**Total Files**: %d\n"
	overviewTotalAreasFormat  = "**Conceptual Areas**: %d\n"
	overviewTotalTokensFormat = "**Estimated Tokens**: %d\n"
	overviewSectionFormat     = "## %s (%d files)\n"
	overviewTokenSectionFmt   = "## %s (%d files, ~%d tokens)\n"
	overviewFilesLine         = "Files:\n"
	overviewFileLineFormat    = "- %s\n"
	overviewMoreLineFormat    = "- ... and %d more\n"
)

// ClusterSummary describes one conceptual area in a structured summary.
type ClusterSummary struct {
	FileCount  int      `json:"file_count"`
	Files      []string `json:"files"`
	SampleFile string   `json:"sample_file"`
}

// IndexSummary is the structured result of indexing a repository.
type IndexSummary struct {
	TotalFiles    int                       `json:"total_files"`
	TotalClusters int                       `json:"total_clusters"`
	Clusters      map[string]ClusterSummary `json:"clusters"`
}

// OverviewOptions controls optional overview annotations. The zero value
// produces the plain protocol output.
type OverviewOptions struct {
	TokenCounter tokenizer.Counter
}

// Summarize builds the structured summary for a cluster map. Each cluster
// reports its file count, up to ten sample paths, and one representative
// path.
func Summarize(clusters types.ClusterMap) IndexSummary {
	summary := IndexSummary{
		TotalFiles:    clusters.TotalFiles(),
		TotalClusters: len(clusters),
		Clusters:      make(map[string]ClusterSummary, len(clusters)),
	}
	for clusterName, records := range clusters {
		sampleCount := len(records)
		if sampleCount > summarySampleLimit {
			sampleCount = summarySampleLimit
		}
		samplePaths := make([]string, 0, sampleCount)
		for _, record := range records[:sampleCount] {
			samplePaths = append(samplePaths, record.RelativePath)
		}
		clusterSummary := ClusterSummary{
			FileCount: len(records),
			Files:     samplePaths,
		}
		if len(records) > 0 {
			clusterSummary.SampleFile = records[0].RelativePath
		}
		summary.Clusters[clusterName] = clusterSummary
	}
	return summary
}

// RenderOverview produces the formatted textual overview. Sections are
// ordered by descending file count with ties broken by ascending cluster
// name, so the output is stable for a given cluster map.
func RenderOverview(clusters types.ClusterMap, options OverviewOptions) string {
	var builder strings.Builder
	builder.WriteString(overviewHeading)
	builder.WriteString(fmt.Sprintf(overviewTotalFilesFormat, clusters.TotalFiles()))
	builder.WriteString(fmt.Sprintf(overviewTotalAreasFormat, len(clusters)))
	if options.TokenCounter != nil {
		builder.WriteString(fmt.Sprintf(overviewTotalTokensFormat, estimateTokens(options.TokenCounter, allRecords(clusters))))
	}
	builder.WriteString("\n")

	for _, clusterName := range orderedClusterNames(clusters) {
		records := clusters[clusterName]
		if options.TokenCounter != nil {
			builder.WriteString(fmt.Sprintf(overviewTokenSectionFmt, clusterName, len(records), estimateTokens(options.TokenCounter, records)))
		} else {
			builder.WriteString(fmt.Sprintf(overviewSectionFormat, clusterName, len(records)))
		}
		builder.WriteString(overviewFilesLine)
		listedCount := len(records)
		if listedCount > overviewSampleLimit {
			listedCount = overviewSampleLimit
		}
		for _, record := range records[:listedCount] {
			builder.WriteString(fmt.Sprintf(overviewFileLineFormat, record.RelativePath))
		}
		if len(records) > overviewSampleLimit {
			builder.WriteString(fmt.Sprintf(overviewMoreLineFormat, len(records)-overviewSampleLimit))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// orderedClusterNames sorts cluster names by descending file count, then by
// ascending name.
func orderedClusterNames(clusters types.ClusterMap) []string {
	names := make([]string, 0, len(clusters))
	for clusterName := range clusters {
		names = append(names, clusterName)
	}
	sort.Slice(names, func(left, right int) bool {
		leftCount := len(clusters[names[left]])
		rightCount := len(clusters[names[right]])
		if leftCount != rightCount {
			return leftCount > rightCount
		}
		return names[left] < names[right]
	})
	return names
}

func allRecords(clusters types.ClusterMap) []types.FileRecord {
	var records []types.FileRecord
	for _, clusterRecords := range clusters {
		records = append(records, clusterRecords...)
	}
	return records
}

// estimateTokens sums token counts over content prefixes. Counts are
// estimates: only the scanned prefix of each file is tokenized. Counter
// failures degrade to zero for the affected record.
func estimateTokens(counter tokenizer.Counter, records []types.FileRecord) int {
	total := 0
	for _, record := range records {
		tokenCount, countError := counter.CountString(record.ContentPrefix)
		if countError != nil {
			continue
		}
		total += tokenCount
	}
	return total
}
