package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/semnav/internal/cluster"
	"github.com/temirov/semnav/internal/config"
	"github.com/temirov/semnav/internal/present"
	"github.com/temirov/semnav/internal/rpc"
	"github.com/temirov/semnav/internal/scanner"
	"github.com/temirov/semnav/internal/types"
	"github.com/temirov/semnav/internal/utils"
)

const (
	serverName = "semnav"

	indexToolDescription    = "Create a semantic index of a code repository (100% local, no API keys needed)"
	overviewToolDescription = "Get a semantic overview of the codebase architecture"
	indexPathDescription    = "Path to the repository to index"
	overviewPathDescription = "Path to the repository"
	pathArgumentName        = "path"
	stringSchemaType        = "string"
	objectSchemaType        = "object"

	indexingRepositoryMessage = "indexing repository"
	scanDegradedMessage       = "scan degraded to empty result"
	scanIncompleteMessage     = "scan finished with errors"
	encodeSummaryFailedFormat = "encode index summary: %w"
)

// navigator bundles the scan, cluster, and present pipeline behind both the
// protocol tools and the CLI commands.
type navigator struct {
	logger      *zap.Logger
	scanService *scanner.Service
	extensions  []string
}

// newNavigator builds a navigator from the loaded configuration.
func newNavigator(logger *zap.Logger, configuration config.ApplicationConfiguration) *navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanOptions := scanner.Options{
		ExcludedDirectories: configuration.Scan.Exclude,
	}
	if configuration.Scan.ContentPrefixLimit != nil {
		scanOptions.ContentPrefixLimit = *configuration.Scan.ContentPrefixLimit
	}
	return &navigator{
		logger:      logger,
		scanService: scanner.NewService(logger, scanOptions),
		extensions:  configuration.Scan.Extensions,
	}
}

// collectRecords streams scanned records from a producer goroutine into a
// consumer collecting them. Filesystem failures degrade to the records
// gathered so far; a missing or non-directory root degrades to an empty
// result. Neither surfaces as an error.
func (navigatorService *navigator) collectRecords(ctx context.Context, rootPath string) []types.FileRecord {
	group, streamCtx := errgroup.WithContext(ctx)
	records := make(chan types.FileRecord)
	var collected []types.FileRecord

	group.Go(func() error {
		defer close(records)
		return navigatorService.scanService.ScanStream(streamCtx, rootPath, navigatorService.extensions, records)
	})

	group.Go(func() error {
		for record := range records {
			collected = append(collected, record)
		}
		return nil
	})

	if waitError := group.Wait(); waitError != nil {
		var rootError scanner.NotDirectoryError
		if errors.As(waitError, &rootError) {
			navigatorService.logger.Warn(scanDegradedMessage, zap.String(pathArgumentName, rootPath), zap.Error(waitError))
			return nil
		}
		navigatorService.logger.Warn(scanIncompleteMessage, zap.String(pathArgumentName, rootPath), zap.Error(waitError))
	}
	return collected
}

// collectClusters runs the scan and cluster stages for one root path.
func (navigatorService *navigator) collectClusters(ctx context.Context, rootPath string) types.ClusterMap {
	return cluster.Cluster(navigatorService.collectRecords(ctx, rootPath))
}

// toolSet registers the two protocol tools with their executors.
func (navigatorService *navigator) toolSet() []rpc.Tool {
	return []rpc.Tool{
		{
			Descriptor: rpc.ToolDescriptor{
				Name:        types.ToolIndexRepository,
				Description: indexToolDescription,
				InputSchema: pathInputSchema(indexPathDescription),
			},
			Executor: rpc.ToolExecutorFunc(navigatorService.executeIndexRepository),
		},
		{
			Descriptor: rpc.ToolDescriptor{
				Name:        types.ToolClusterOverview,
				Description: overviewToolDescription,
				InputSchema: pathInputSchema(overviewPathDescription),
			},
			Executor: rpc.ToolExecutorFunc(navigatorService.executeClusterOverview),
		},
	}
}

// newRouter builds the protocol router for this navigator.
func (navigatorService *navigator) newRouter() *rpc.Router {
	return rpc.NewRouter(navigatorService.logger, rpc.Config{
		ServerName:    serverName,
		ServerVersion: utils.GetApplicationVersion(),
		Tools:         navigatorService.toolSet(),
	})
}

// executeIndexRepository produces the structured index summary as an
// indented JSON payload.
func (navigatorService *navigator) executeIndexRepository(arguments rpc.ToolArguments) (string, error) {
	navigatorService.logger.Info(indexingRepositoryMessage, zap.String(pathArgumentName, arguments.Path))
	clusters := navigatorService.collectClusters(context.Background(), arguments.Path)
	summary := present.Summarize(clusters)
	payload, encodeError := json.MarshalIndent(summary, "", "  ")
	if encodeError != nil {
		return "", fmt.Errorf(encodeSummaryFailedFormat, encodeError)
	}
	return string(payload), nil
}

// executeClusterOverview produces the formatted textual overview.
func (navigatorService *navigator) executeClusterOverview(arguments rpc.ToolArguments) (string, error) {
	clusters := navigatorService.collectClusters(context.Background(), arguments.Path)
	return present.RenderOverview(clusters, present.OverviewOptions{}), nil
}

// pathInputSchema builds the single required string field schema both tools
// share.
func pathInputSchema(description string) rpc.ToolInputSchema {
	return rpc.ToolInputSchema{
		Type: objectSchemaType,
		Properties: map[string]rpc.ToolProperty{
			pathArgumentName: {Type: stringSchemaType, Description: description},
		},
		Required: []string{pathArgumentName},
	}
}
