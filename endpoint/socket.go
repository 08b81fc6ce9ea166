package endpoint

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/viant/mcp-proxy/internal/diag"
)

// socketEndpoint connects per call: a Unix domain socket dial first, then a
// FIFO fallback that writes the request to the path and reopens the same
// path to read the response. The fallback is a compatibility shim: it works
// only with a backend that alternates reader and writer roles on the path,
// a convention no contract guarantees, and it is attempted solely when the
// initial dial fails, never mid call.
type socketEndpoint struct {
	path   string
	logger *diag.Logger
}

func newSocketEndpoint(config *Config, logger *diag.Logger) *socketEndpoint {
	return &socketEndpoint{path: config.Socket, logger: logger}
}

func (e *socketEndpoint) RoundTrip(ctx context.Context, request *Request) (json.RawMessage, error) {
	data, err := encodeEnvelope(request)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", e.path)
	if err != nil {
		e.logger.Debugf("unix connect to %v failed (%v), trying FIFO", e.path, err)
		return e.fifoRoundTrip(data)
	}
	defer conn.Close()
	if _, err = conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write to socket: %w", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return nil, fmt.Errorf("failed to read from socket: %w", err)
	}
	return decodeLine(line)
}

// fifoRoundTrip exchanges one request/response pair over a named pipe: the
// request is written and the pipe closed, then the same path is opened for
// reading one reply line.
func (e *socketEndpoint) fifoRoundTrip(data []byte) (json.RawMessage, error) {
	writer, err := os.OpenFile(e.path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open pipe for writing: %w", err)
	}
	_, err = writer.Write(append(data, '\n'))
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write to pipe: %w", err)
	}
	reader, err := os.OpenFile(e.path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open pipe for reading: %w", err)
	}
	defer reader.Close()
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return nil, fmt.Errorf("failed to read from pipe: %w", err)
	}
	return decodeLine(line)
}

func (e *socketEndpoint) Close() error {
	return nil
}
