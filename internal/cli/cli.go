// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/semnav/internal/config"
	"github.com/temirov/semnav/internal/present"
	"github.com/temirov/semnav/internal/rpc"
	"github.com/temirov/semnav/internal/services/clipboard"
	"github.com/temirov/semnav/internal/tokenizer"
	"github.com/temirov/semnav/internal/types"
	"github.com/temirov/semnav/internal/utils"
)

const (
	versionFlagName   = "version"
	configFlagName    = "config"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	copyFlagName      = "copy"
	versionTemplate   = "semnav version: %s\n"
	defaultPath       = "."
	rootUse           = "semnav"
	rootShort         = "semnav command line interface"
	rootLong          = `semnav scans a source tree and groups files into conceptual areas
using filename and path heuristics. Run it as a stdio JSON-RPC server for
MCP-compatible clients, or use the index and overview commands directly.`
	serveUse          = types.CommandServe
	serveShort        = "serve the navigator over stdin/stdout"
	serveLong         = `Run the line-delimited JSON-RPC server on standard input and output.
Diagnostics go to standard error; the loop exits when input ends.`
	indexUse          = types.CommandIndex + " [path]"
	indexShort        = "print the structured cluster index (i)"
	indexAlias        = "i"
	indexLong         = `Scan the tree at path, cluster the files, and print the structured
summary as indented JSON.`
	overviewUse       = types.CommandOverview + " [path]"
	overviewShort     = "print the conceptual area overview (o)"
	overviewAlias     = "o"
	overviewLong      = `Scan the tree at path, cluster the files, and print a formatted
overview of the conceptual areas. Use --tokens to include token estimates
and --copy to place the overview on the system clipboard.`
	overviewExample   = `  # Overview of the current repository
  semnav overview .

  # Overview with token estimates, copied to the clipboard
  semnav overview --tokens --copy ./web`

	versionFlagDescription = "display application version"
	configFlagDescription  = "path to an explicit configuration file"
	tokensFlagDescription  = "include token count estimates"
	modelFlagDescription   = "tokenizer model to use for token counting"
	copyFlagDescription    = "copy the overview to the system clipboard"

	defaultTokenizerModelName = "gpt-4o"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	clipboardCopyFailedFormat   = "copy overview to clipboard: %w"
)

// Execute runs the semnav application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := createRootCommand(loggerInstance)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger) *cobra.Command {
	var showVersion bool
	var explicitConfigPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShort,
		Long:         rootLong,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&explicitConfigPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createServeCommand(loggerInstance, &explicitConfigPath),
		createIndexCommand(loggerInstance, &explicitConfigPath),
		createOverviewCommand(loggerInstance, &explicitConfigPath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createServeCommand returns the serve subcommand.
func createServeCommand(loggerInstance *zap.Logger, explicitConfigPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   serveUse,
		Short: serveShort,
		Long:  serveLong,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			navigatorService, buildError := buildNavigator(loggerInstance, *explicitConfigPath)
			if buildError != nil {
				return buildError
			}
			server := rpc.NewServer(navigatorService.newRouter(), loggerInstance)
			return server.Serve(command.InOrStdin(), command.OutOrStdout())
		},
	}
}

// createIndexCommand returns the index subcommand.
func createIndexCommand(loggerInstance *zap.Logger, explicitConfigPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     indexUse,
		Aliases: []string{indexAlias},
		Short:   indexShort,
		Long:    indexLong,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			navigatorService, buildError := buildNavigator(loggerInstance, *explicitConfigPath)
			if buildError != nil {
				return buildError
			}
			payload, executionError := navigatorService.executeIndexRepository(rpc.ToolArguments{Path: singlePathArgument(arguments)})
			if executionError != nil {
				return executionError
			}
			fmt.Fprintln(command.OutOrStdout(), payload)
			return nil
		},
	}
}

// createOverviewCommand returns the overview subcommand.
func createOverviewCommand(loggerInstance *zap.Logger, explicitConfigPath *string) *cobra.Command {
	var tokensEnabled bool
	var tokenizerModel string
	var copyEnabled bool

	overviewCommand := &cobra.Command{
		Use:     overviewUse,
		Aliases: []string{overviewAlias},
		Short:   overviewShort,
		Long:    overviewLong,
		Example: overviewExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, navigatorService, buildError := buildNavigatorWithConfiguration(loggerInstance, *explicitConfigPath)
			if buildError != nil {
				return buildError
			}

			if !command.Flags().Changed(tokensFlagName) && configuration.Overview.Tokens.Enabled != nil {
				tokensEnabled = *configuration.Overview.Tokens.Enabled
			}
			if !command.Flags().Changed(modelFlagName) && configuration.Overview.Tokens.Model != "" {
				tokenizerModel = configuration.Overview.Tokens.Model
			}
			if !command.Flags().Changed(copyFlagName) && configuration.Overview.Clipboard != nil {
				copyEnabled = *configuration.Overview.Clipboard
			}

			overviewOptions := present.OverviewOptions{}
			if tokensEnabled {
				tokenCounter, _, counterError := tokenizer.NewCounter(tokenizer.Config{Model: tokenizerModel})
				if counterError != nil {
					return counterError
				}
				overviewOptions.TokenCounter = tokenCounter
			}

			clusters := navigatorService.collectClusters(command.Context(), singlePathArgument(arguments))
			overviewText := present.RenderOverview(clusters, overviewOptions)
			fmt.Fprint(command.OutOrStdout(), overviewText)

			if copyEnabled {
				if copyError := clipboard.NewService().Copy(overviewText); copyError != nil {
					return fmt.Errorf(clipboardCopyFailedFormat, copyError)
				}
			}
			return nil
		},
	}

	overviewCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	overviewCommand.Flags().StringVar(&tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	overviewCommand.Flags().BoolVar(&copyEnabled, copyFlagName, false, copyFlagDescription)
	return overviewCommand
}

// buildNavigator loads configuration and constructs the navigator pipeline.
func buildNavigator(loggerInstance *zap.Logger, explicitConfigPath string) (*navigator, error) {
	_, navigatorService, buildError := buildNavigatorWithConfiguration(loggerInstance, explicitConfigPath)
	return navigatorService, buildError
}

func buildNavigatorWithConfiguration(loggerInstance *zap.Logger, explicitConfigPath string) (config.ApplicationConfiguration, *navigator, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.ApplicationConfiguration{}, nil, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitConfigPath,
	})
	if configurationError != nil {
		return config.ApplicationConfiguration{}, nil, configurationError
	}
	return configuration, newNavigator(loggerInstance, configuration), nil
}

// singlePathArgument resolves the optional positional path argument.
func singlePathArgument(arguments []string) string {
	if len(arguments) == 0 {
		return defaultPath
	}
	trimmed := strings.TrimSpace(arguments[0])
	if trimmed == "" {
		return defaultPath
	}
	return trimmed
}
