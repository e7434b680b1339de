package cluster_test

import (
	"testing"

	"github.com/temirov/semnav/internal/cluster"
	"github.com/temirov/semnav/internal/types"
)

// TestAssignLabel verifies the documented rule priority for representative paths.
func TestAssignLabel(testingHandle *testing.T) {
	testCases := []struct {
		name          string
		relativePath  string
		expectedLabel string
	}{
		{name: "components_directory", relativePath: "src/components/Button.tsx", expectedLabel: cluster.LabelUIComponents},
		{name: "component_substring", relativePath: "src/lib/componentFactory.ts", expectedLabel: cluster.LabelUIComponents},
		{name: "hooks_directory", relativePath: "src/hooks/useAuth.ts", expectedLabel: cluster.LabelReactHooks},
		{name: "hook_substring", relativePath: "src/lib/useHookHelpers.ts", expectedLabel: cluster.LabelReactHooks},
		{name: "services_directory", relativePath: "src/services/client.ts", expectedLabel: cluster.LabelServices},
		{name: "utils_directory", relativePath: "src/utils/format.ts", expectedLabel: cluster.LabelUtilities},
		{name: "helper_substring", relativePath: "src/lib/dateHelper.ts", expectedLabel: cluster.LabelUtilities},
		{name: "types_directory", relativePath: "src/types/user.ts", expectedLabel: cluster.LabelTypeDefinitions},
		{name: "interface_substring", relativePath: "src/lib/storeInterfaces.ts", expectedLabel: cluster.LabelTypeDefinitions},
		{name: "test_suffix", relativePath: "src/lib/parser.test.ts", expectedLabel: cluster.LabelTests},
		{name: "config_substring", relativePath: "vite.config.ts", expectedLabel: cluster.LabelConfiguration},
		{name: "setup_substring", relativePath: "scripts/setupEnvironment.py", expectedLabel: cluster.LabelConfiguration},
		{name: "auth_component", relativePath: "src/auth/flow.ts", expectedLabel: cluster.LabelAuthentication},
		{name: "session_component", relativePath: "backend/session/store.go", expectedLabel: cluster.LabelAuthentication},
		{name: "models_component", relativePath: "backend/models/user.go", expectedLabel: cluster.LabelDatabase},
		{name: "routes_component", relativePath: "backend/routes/health.go", expectedLabel: cluster.LabelAPIRoutes},
		{name: "fallback_capitalizes_first_component", relativePath: "widgets/clock.ts", expectedLabel: "Widgets"},
		{name: "fallback_skips_src", relativePath: "src/pages/home.tsx", expectedLabel: "Pages"},
		{name: "fallback_uses_file_name", relativePath: "main.rs", expectedLabel: "Main.rs"},
		{name: "fallback_other", relativePath: "src", expectedLabel: cluster.LabelOther},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			assignedLabel := cluster.AssignLabel(testCase.relativePath)
			if assignedLabel != testCase.expectedLabel {
				subTest.Fatalf("expected label %q for %q, got %q", testCase.expectedLabel, testCase.relativePath, assignedLabel)
			}
		})
	}
}

// TestAssignLabelPriorityOrder verifies that earlier rules shadow later ones
// when several keywords appear in the same path.
func TestAssignLabelPriorityOrder(testingHandle *testing.T) {
	testCases := []struct {
		name          string
		relativePath  string
		expectedLabel string
	}{
		{name: "component_beats_hook", relativePath: "src/components/useDialogHook.ts", expectedLabel: cluster.LabelUIComponents},
		{name: "hook_beats_service", relativePath: "src/hooks/serviceState.ts", expectedLabel: cluster.LabelReactHooks},
		{name: "service_beats_util", relativePath: "src/services/utilClient.ts", expectedLabel: cluster.LabelServices},
		{name: "util_beats_type", relativePath: "src/utils/typeGuards.ts", expectedLabel: cluster.LabelUtilities},
		{name: "type_beats_test", relativePath: "src/types/user.test.ts", expectedLabel: cluster.LabelTypeDefinitions},
		{name: "test_beats_config", relativePath: "src/lib/config.test.ts", expectedLabel: cluster.LabelTests},
		{name: "config_beats_auth", relativePath: "auth/config.ts", expectedLabel: cluster.LabelConfiguration},
		{name: "auth_beats_database", relativePath: "auth/db/token.go", expectedLabel: cluster.LabelAuthentication},
		{name: "database_beats_routes", relativePath: "db/api/queries.go", expectedLabel: cluster.LabelDatabase},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			assignedLabel := cluster.AssignLabel(testCase.relativePath)
			if assignedLabel != testCase.expectedLabel {
				subTest.Fatalf("expected label %q for %q, got %q", testCase.expectedLabel, testCase.relativePath, assignedLabel)
			}
		})
	}
}

// TestClusterPartitionsEveryRecordExactlyOnce verifies the partition
// invariant and input-order preservation within clusters.
func TestClusterPartitionsEveryRecordExactlyOnce(testingHandle *testing.T) {
	fileRecords := []types.FileRecord{
		{RelativePath: "src/components/Button.tsx"},
		{RelativePath: "src/components/Input.tsx"},
		{RelativePath: "src/hooks/useAuth.ts"},
		{RelativePath: "src/utils/format.ts"},
	}

	clusters := cluster.Cluster(fileRecords)

	if clusters.TotalFiles() != len(fileRecords) {
		testingHandle.Fatalf("expected %d clustered files, got %d", len(fileRecords), clusters.TotalFiles())
	}
	componentRecords := clusters[cluster.LabelUIComponents]
	if len(componentRecords) != 2 {
		testingHandle.Fatalf("expected 2 component records, got %d", len(componentRecords))
	}
	if componentRecords[0].RelativePath != "src/components/Button.tsx" || componentRecords[1].RelativePath != "src/components/Input.tsx" {
		testingHandle.Fatalf("cluster does not preserve input order: %+v", componentRecords)
	}
}

// TestClusterIsOrderIndependent verifies that the resulting partition does
// not depend on input ordering.
func TestClusterIsOrderIndependent(testingHandle *testing.T) {
	forwardRecords := []types.FileRecord{
		{RelativePath: "src/components/Button.tsx"},
		{RelativePath: "src/hooks/useAuth.ts"},
		{RelativePath: "backend/models/user.go"},
	}
	reversedRecords := []types.FileRecord{
		{RelativePath: "backend/models/user.go"},
		{RelativePath: "src/hooks/useAuth.ts"},
		{RelativePath: "src/components/Button.tsx"},
	}

	forwardClusters := cluster.Cluster(forwardRecords)
	reversedClusters := cluster.Cluster(reversedRecords)

	if len(forwardClusters) != len(reversedClusters) {
		testingHandle.Fatalf("cluster count differs between orderings: %d vs %d", len(forwardClusters), len(reversedClusters))
	}
	for clusterName, records := range forwardClusters {
		if len(reversedClusters[clusterName]) != len(records) {
			testingHandle.Fatalf("cluster %q size differs between orderings", clusterName)
		}
	}
}

// TestClusterEmptyInput verifies the total-function contract for empty input.
func TestClusterEmptyInput(testingHandle *testing.T) {
	clusters := cluster.Cluster(nil)
	if len(clusters) != 0 {
		testingHandle.Fatalf("expected empty cluster map, got %d clusters", len(clusters))
	}
}
