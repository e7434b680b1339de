package rpc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	// maxRequestLineBytes bounds a single request line. Longer lines are
	// discarded and logged like any other malformed input; they never stop
	// the serve loop.
	maxRequestLineBytes = 4 * 1024 * 1024

	serverStartingMessage       = "semnav server starting"
	serverStoppedMessage        = "semnav server stopped"
	invalidRequestLineMessage   = "invalid request line"
	requestLineTooLongMessage   = "request line exceeds limit, discarded"
	encodeResponseFailedMessage = "failed to encode response"
	writeResponseFailedFormat   = "write response: %w"
	readRequestsFailedFormat    = "read requests: %w"

	requestLineFieldName = "line"
	lineLimitFieldName   = "limit"
	methodFieldName      = "method"
)

// Server reads newline-delimited requests and writes one response line per
// valid request. Processing is strictly synchronous: the next line is not
// read before the current response has been written, and no state survives a
// request.
type Server struct {
	router *Router
	logger *zap.Logger
}

// NewServer creates a Server backed by the provided router.
func NewServer(router *Router, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{router: router, logger: logger}
}

// Serve runs the request loop until reader is exhausted. Lines that do not
// decode into a request envelope, and lines longer than maxRequestLineBytes,
// are logged and skipped without a response; every decoded request yields
// exactly one response line.
func (server *Server) Serve(reader io.Reader, writer io.Writer) error {
	server.logger.Info(serverStartingMessage)

	lineReader := bufio.NewReader(reader)
	for {
		requestLine, lineTooLong, readError := readRequestLine(lineReader)
		if readError != nil && !errors.Is(readError, io.EOF) {
			return fmt.Errorf(readRequestsFailedFormat, readError)
		}

		if lineTooLong {
			server.logger.Warn(requestLineTooLongMessage, zap.Int(lineLimitFieldName, maxRequestLineBytes))
		} else if len(requestLine) > 0 {
			if writeError := server.respondToLine(requestLine, writer); writeError != nil {
				return writeError
			}
		}

		if errors.Is(readError, io.EOF) {
			break
		}
	}

	server.logger.Info(serverStoppedMessage)
	return nil
}

// respondToLine decodes one request line and writes its response. Decode and
// encode failures are logged and swallowed; only a failed write aborts the
// loop, because a broken output stream cannot carry further responses.
func (server *Server) respondToLine(requestLine []byte, writer io.Writer) error {
	var request Request
	if decodeError := json.Unmarshal(requestLine, &request); decodeError != nil {
		server.logger.Warn(invalidRequestLineMessage, zap.ByteString(requestLineFieldName, requestLine), zap.Error(decodeError))
		return nil
	}

	response := server.router.Handle(request)
	responseLine, encodeError := json.Marshal(response)
	if encodeError != nil {
		server.logger.Warn(encodeResponseFailedMessage, zap.String(methodFieldName, request.Method), zap.Error(encodeError))
		return nil
	}
	if _, writeError := writer.Write(append(responseLine, '\n')); writeError != nil {
		return fmt.Errorf(writeResponseFailedFormat, writeError)
	}
	return nil
}

// readRequestLine reads one newline-delimited line. Once the accumulated line
// exceeds maxRequestLineBytes the remainder is read and dropped, so an
// arbitrarily long line costs bounded memory and the reader stays positioned
// on the next line.
func readRequestLine(lineReader *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, readError := lineReader.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
		}
		if errors.Is(readError, bufio.ErrBufferFull) {
			if len(line) > maxRequestLineBytes {
				line = nil
				tooLong = true
			}
			continue
		}
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > maxRequestLineBytes {
			line = nil
			tooLong = true
		}
		return line, tooLong, readError
	}
}
