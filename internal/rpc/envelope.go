// Package rpc implements the line-delimited JSON-RPC surface of the semnav
// server: envelope types, the request router, and the stdio serve loop.
package rpc

import "encoding/json"

const (
	// JSONRPCVersion is the protocol version stamped on every envelope.
	JSONRPCVersion = "2.0"
	// ProtocolVersion is the navigator protocol revision reported by initialize.
	ProtocolVersion = "0.1.0"

	// CodeMethodNotFound is the reserved JSON-RPC code for unknown methods.
	CodeMethodNotFound = -32601
	// CodeInternalError is the reserved JSON-RPC code for unexpected failures.
	CodeInternalError = -32603

	MethodInitialize = "initialize"
	MethodToolsList  = "tools/list"
	MethodToolsCall  = "tools/call"
)

// Request is the decoded envelope of one incoming line. The identifier is
// kept opaque and echoed back verbatim.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is the envelope written for every handled request. Exactly one of
// Result and Error is populated.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject carries a reserved error code and a human-readable message.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ServerInfo identifies the server in the initialize result.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CapabilitySet advertises the protocol features the server supports.
type CapabilitySet struct {
	Tools struct{} `json:"tools"`
}

// InitializeResult is the fixed metadata returned by initialize.
type InitializeResult struct {
	ProtocolVersion string        `json:"protocolVersion"`
	Capabilities    CapabilitySet `json:"capabilities"`
	ServerInfo      ServerInfo    `json:"serverInfo"`
}

// ToolProperty describes one input field of a tool schema.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolInputSchema describes the argument object a tool accepts.
type ToolInputSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// ToolDescriptor is the static schema of one callable tool.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"inputSchema"`
}

// ToolsListResult is the result payload of tools/list.
type ToolsListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ToolCallParams are the decoded parameters of tools/call.
type ToolCallParams struct {
	Name      string        `json:"name"`
	Arguments ToolArguments `json:"arguments"`
}

// ToolArguments holds the arguments shared by both tools.
type ToolArguments struct {
	Path string `json:"path"`
}

// ToolContent is one content block of a tool result.
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolCallResult wraps a textual payload in the protocol content shape.
type ToolCallResult struct {
	Content []ToolContent `json:"content"`
}

// NewTextResult builds a single-block textual tool result.
func NewTextResult(text string) ToolCallResult {
	return ToolCallResult{Content: []ToolContent{{Type: "text", Text: text}}}
}
