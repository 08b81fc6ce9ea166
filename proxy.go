package proxy

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-proxy/endpoint"
	"github.com/viant/mcp-proxy/internal/conv"
	"github.com/viant/mcp-proxy/internal/diag"
)

// Service runs one proxy session over a pair of byte streams: JSON-RPC
// requests in, one response line per id-carrying request out.  A single
// backend endpoint stays active for the whole session.
type Service struct {
	handler    transport.Handler
	backend    endpoint.Endpoint
	logger     *diag.Logger
	input      io.Reader
	output     io.Writer
	diagWriter io.Writer
}

// Option customizes a Service.
type Option func(*Service)

// WithIO overrides the protocol streams; the defaults are stdin and stdout.
func WithIO(input io.Reader, output io.Writer) Option {
	return func(s *Service) {
		s.input = input
		s.output = output
	}
}

// WithDiagnostics overrides the diagnostics stream; the default is stderr.
// The stream also receives stderr output of a command backend.
func WithDiagnostics(writer io.Writer) Option {
	return func(s *Service) {
		s.diagWriter = writer
	}
}

// New builds a proxy service for validated options, establishing the backend
// endpoint; a command backend is spawned here and a failure to start it is a
// construction error.
func New(ctx context.Context, options *Options, opts ...Option) (*Service, error) {
	service := &Service{
		input:      os.Stdin,
		output:     os.Stdout,
		diagWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.logger = diag.New(service.diagWriter, options.Verbose)
	httpClient, err := buildHTTPClient(ctx, options, service.logger)
	if err != nil {
		return nil, err
	}
	backend, err := endpoint.New(ctx, &endpoint.Config{
		URL:        options.URL,
		Timeout:    options.Timeout(),
		HTTPClient: httpClient,
		Command:    options.Command,
		Args:       options.Arguments(),
		Stderr:     service.diagWriter,
		Socket:     options.Pipe,
	}, service.logger)
	if err != nil {
		return nil, err
	}
	service.backend = backend
	service.handler = NewHandler(backend, service.logger)
	service.logger.Infof("proxying to %v", options.Target())
	return service, nil
}

// Run processes the session until end of input.  Failures of individual
// requests are answered on the wire and never stop the loop; only an input
// stream failure is returned.
func (s *Service) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.input)
	for {
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			s.handleLine(ctx, trimmed)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleLine resolves one input line end to end before the caller reads the
// next one.  Lines that do not decode into a well-formed request are logged
// and skipped without producing output.
func (s *Service) handleLine(ctx context.Context, line string) {
	request, err := parseRequest([]byte(line))
	if err != nil {
		s.logger.Warnf("failed to parse JSON-RPC request: %v", err)
		return
	}
	// a missing id marks a notification; notifications/initialized is
	// consumed silently even when a client attaches an id
	if request.Id == nil || request.Method == schema.MethodNotificationInitialized {
		s.handler.OnNotification(ctx, &jsonrpc.Notification{Method: request.Method, Params: request.Params})
		return
	}
	response := &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Id: request.Id}
	s.handler.Serve(ctx, request, response)
	s.writeResponse(response)
}

func (s *Service) writeResponse(response *jsonrpc.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Errorf("failed to encode response: %v", err)
		return
	}
	if _, err = fmt.Fprintf(s.output, "%s\n", data); err != nil {
		s.logger.Errorf("failed to write response: %v", err)
	}
}

// Close releases the backend endpoint; for a command backend this reaps the
// child process.
func (s *Service) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// jsonrpcRequest aliases jsonrpc.Request to decode with plain field rules.
type jsonrpcRequest jsonrpc.Request

// parseRequest decodes one input line, enforcing the JSON-RPC 2.0 shape:
// the "2.0" version marker, a non-empty method and, when present, an
// integer id.
func parseRequest(data []byte) (*jsonrpc.Request, error) {
	request := &jsonrpcRequest{}
	if err := json.Unmarshal(data, request); err != nil {
		return nil, err
	}
	if request.Jsonrpc != jsonrpc.Version {
		return nil, fmt.Errorf("unsupported jsonrpc version: %v", request.Jsonrpc)
	}
	if request.Method == "" {
		return nil, fmt.Errorf("missing method")
	}
	if request.Id != nil {
		id, ok := conv.AsInt(request.Id)
		if !ok {
			return nil, fmt.Errorf("unsupported request id: %v", request.Id)
		}
		request.Id = id
	}
	return (*jsonrpc.Request)(request), nil
}
