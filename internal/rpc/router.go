package rpc

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const (
	methodNotFoundMessageFormat = "Method not found: %s"
	toolNotFoundMessageFormat   = "Tool not found: %s"
	internalErrorMessageFormat  = "Internal error: %s"
	defaultToolPath             = "."
	recoveredPanicMessage       = "recovered panic during dispatch"
)

// ToolExecutor runs one tool invocation and returns its textual payload.
type ToolExecutor interface {
	Execute(arguments ToolArguments) (string, error)
}

// ToolExecutorFunc adapts a function into a ToolExecutor.
type ToolExecutorFunc func(arguments ToolArguments) (string, error)

// Execute invokes the underlying function.
func (executor ToolExecutorFunc) Execute(arguments ToolArguments) (string, error) {
	return executor(arguments)
}

// Tool pairs a static descriptor with its executor.
type Tool struct {
	Descriptor ToolDescriptor
	Executor   ToolExecutor
}

// Config defines the protocol surface served by a Router.
type Config struct {
	ServerName    string
	ServerVersion string
	Tools         []Tool
}

type methodHandler func(request Request) (interface{}, *ErrorObject)

// Router dispatches decoded requests to capability handlers. Both the method
// table and the tool table are plain maps so the protocol surface stays
// visible and extensible.
type Router struct {
	logger      *zap.Logger
	config      Config
	methods     map[string]methodHandler
	executors   map[string]ToolExecutor
	descriptors []ToolDescriptor
}

// NewRouter creates a Router serving the configured tools.
func NewRouter(logger *zap.Logger, config Config) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := &Router{
		logger:    logger,
		config:    config,
		executors: make(map[string]ToolExecutor, len(config.Tools)),
	}
	for _, tool := range config.Tools {
		router.descriptors = append(router.descriptors, tool.Descriptor)
		router.executors[tool.Descriptor.Name] = tool.Executor
	}
	router.methods = map[string]methodHandler{
		MethodInitialize: router.handleInitialize,
		MethodToolsList:  router.handleToolsList,
		MethodToolsCall:  router.handleToolsCall,
	}
	return router
}

// Handle processes one request and always produces a well-formed response.
// Panics raised anywhere during dispatch are converted into internal-error
// responses so a single bad request cannot terminate the serve loop.
func (router *Router) Handle(request Request) (response Response) {
	response = Response{JSONRPC: JSONRPCVersion, ID: request.ID}

	defer func() {
		if recovered := recover(); recovered != nil {
			router.logger.Warn(recoveredPanicMessage, zap.String("method", request.Method), zap.Any("panic", recovered))
			response.Result = nil
			response.Error = &ErrorObject{
				Code:    CodeInternalError,
				Message: fmt.Sprintf(internalErrorMessageFormat, fmt.Sprint(recovered)),
			}
		}
	}()

	handler, methodKnown := router.methods[request.Method]
	if !methodKnown {
		response.Error = &ErrorObject{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf(methodNotFoundMessageFormat, request.Method),
		}
		return response
	}

	result, errorObject := handler(request)
	if errorObject != nil {
		response.Error = errorObject
		return response
	}
	response.Result = result
	return response
}

// handleInitialize returns fixed server metadata. It has no side effects and
// no dependency on filesystem state.
func (router *Router) handleInitialize(Request) (interface{}, *ErrorObject) {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo: ServerInfo{
			Name:    router.config.ServerName,
			Version: router.config.ServerVersion,
		},
	}, nil
}

// handleToolsList returns the static schemas of all registered tools.
func (router *Router) handleToolsList(Request) (interface{}, *ErrorObject) {
	descriptors := append([]ToolDescriptor{}, router.descriptors...)
	return ToolsListResult{Tools: descriptors}, nil
}

// handleToolsCall dispatches on the requested tool name and wraps the
// executor's textual payload. Executor failures surface as internal errors;
// filesystem problems never reach this boundary because executors degrade
// them to empty results.
func (router *Router) handleToolsCall(request Request) (interface{}, *ErrorObject) {
	var parameters ToolCallParams
	if len(request.Params) > 0 {
		if decodeError := json.Unmarshal(request.Params, &parameters); decodeError != nil {
			return nil, &ErrorObject{
				Code:    CodeInternalError,
				Message: fmt.Sprintf(internalErrorMessageFormat, decodeError.Error()),
			}
		}
	}
	executor, toolKnown := router.executors[parameters.Name]
	if !toolKnown {
		return nil, &ErrorObject{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf(toolNotFoundMessageFormat, parameters.Name),
		}
	}
	arguments := parameters.Arguments
	if arguments.Path == "" {
		arguments.Path = defaultToolPath
	}
	payload, executionError := executor.Execute(arguments)
	if executionError != nil {
		return nil, &ErrorObject{
			Code:    CodeInternalError,
			Message: fmt.Sprintf(internalErrorMessageFormat, executionError.Error()),
		}
	}
	return NewTextResult(payload), nil
}
