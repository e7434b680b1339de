// Package cluster partitions scanned files into named conceptual areas using
// ordered path and name heuristics.
package cluster

import (
	"strings"

	"github.com/temirov/semnav/internal/types"
	"github.com/temirov/semnav/internal/utils"
)

// Conceptual area labels produced by the rule table.
const (
	LabelUIComponents    = "UI Components"
	LabelReactHooks      = "React Hooks"
	LabelServices        = "Services & APIs"
	LabelUtilities       = "Utilities & Helpers"
	LabelTypeDefinitions = "Type Definitions"
	LabelTests           = "Tests"
	LabelConfiguration   = "Configuration"
	LabelAuthentication  = "Authentication"
	LabelDatabase        = "Database & Models"
	LabelAPIRoutes       = "API Routes"
	LabelOther           = "Other"
)

// pathFacts carries the precomputed views of one relative path that the rule
// predicates evaluate against.
type pathFacts struct {
	loweredPath string
	components  []string
}

// clusteringRule pairs a predicate with the label it assigns.
type clusteringRule struct {
	label   string
	matches func(facts pathFacts) bool
}

var testFileSuffixes = []string{".test.ts", ".test.tsx"}

// orderedClusteringRules is evaluated first-match-wins. The order is part of
// the clustering contract: several keywords overlap, so an earlier rule must
// shadow every later one.
var orderedClusteringRules = []clusteringRule{
	{label: LabelUIComponents, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "component") || hasComponent(facts, "components")
	}},
	{label: LabelReactHooks, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "hook") || hasComponent(facts, "hooks")
	}},
	{label: LabelServices, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "service") || hasComponent(facts, "services")
	}},
	{label: LabelUtilities, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "util") || hasComponent(facts, "utils") || strings.Contains(facts.loweredPath, "helper")
	}},
	{label: LabelTypeDefinitions, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "type") || hasComponent(facts, "types") || strings.Contains(facts.loweredPath, "interface")
	}},
	{label: LabelTests, matches: func(facts pathFacts) bool {
		if strings.Contains(facts.loweredPath, "test") {
			return true
		}
		for _, suffix := range testFileSuffixes {
			if strings.HasSuffix(facts.loweredPath, suffix) {
				return true
			}
		}
		return false
	}},
	{label: LabelConfiguration, matches: func(facts pathFacts) bool {
		return strings.Contains(facts.loweredPath, "config") || strings.Contains(facts.loweredPath, "setup")
	}},
	{label: LabelAuthentication, matches: func(facts pathFacts) bool {
		return hasAnyComponent(facts, "auth", "login", "session")
	}},
	{label: LabelDatabase, matches: func(facts pathFacts) bool {
		return hasAnyComponent(facts, "db", "database", "model", "models")
	}},
	{label: LabelAPIRoutes, matches: func(facts pathFacts) bool {
		return hasAnyComponent(facts, "api", "route", "routes", "endpoint")
	}},
}

// fallbackSkippedComponents never become a fallback label.
var fallbackSkippedComponents = []string{".", "..", "src"}

func hasComponent(facts pathFacts, componentName string) bool {
	return utils.ContainsString(facts.components, componentName)
}

func hasAnyComponent(facts pathFacts, componentNames ...string) bool {
	for _, componentName := range componentNames {
		if hasComponent(facts, componentName) {
			return true
		}
	}
	return false
}

// AssignLabel returns the conceptual area label for one relative path. The
// assignment depends only on the path string, never on scan order.
func AssignLabel(relativePath string) string {
	facts := pathFacts{
		loweredPath: strings.ToLower(relativePath),
		components:  utils.PathComponents(relativePath),
	}
	for _, rule := range orderedClusteringRules {
		if rule.matches(facts) {
			return rule.label
		}
	}
	for _, component := range facts.components {
		if utils.ContainsString(fallbackSkippedComponents, component) {
			continue
		}
		return utils.CapitalizeWord(component)
	}
	return LabelOther
}

// Cluster assigns every record to exactly one conceptual area. The function
// is pure and total: an empty input yields an empty map, and within each
// cluster the records keep their input order.
func Cluster(files []types.FileRecord) types.ClusterMap {
	clusters := make(types.ClusterMap)
	for _, fileRecord := range files {
		label := AssignLabel(fileRecord.RelativePath)
		clusters[label] = append(clusters[label], fileRecord)
	}
	return clusters
}
