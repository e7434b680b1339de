// Package types defines every cross-package data structure used by the semnav tool.
package types

const (
	CommandServe    = "serve"
	CommandIndex    = "index"
	CommandOverview = "overview"

	// ToolIndexRepository is the protocol name of the indexing tool.
	ToolIndexRepository = "index_repository"
	// ToolClusterOverview is the protocol name of the overview tool.
	ToolClusterOverview = "get_cluster_overview"
)

// FileRecord is the scanned representation of one source file. Records are
// built fresh on every scan and never mutated afterwards.
type FileRecord struct {
	RelativePath  string `json:"path"`
	AbsolutePath  string `json:"fullPath"`
	ContentPrefix string `json:"-"`
	Size          int    `json:"size"`
	Extension     string `json:"extension"`
}

// ClusterMap groups scanned files under conceptual area labels. Every input
// record belongs to exactly one cluster; within a cluster the records keep
// the order in which they were supplied.
type ClusterMap map[string][]FileRecord

// TotalFiles returns the number of records across all clusters.
func (clusters ClusterMap) TotalFiles() int {
	total := 0
	for _, records := range clusters {
		total += len(records)
	}
	return total
}
