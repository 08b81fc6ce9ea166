package endpoint

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/viant/mcp-proxy/internal/diag"
)

// exitWait bounds each stage of the shutdown escalation.
const exitWait = 5 * time.Second

// processEndpoint owns a single long lived subprocess and exchanges newline
// delimited JSON-RPC on its standard streams. The child is spawned once at
// construction and never restarted: after it dies every round trip fails
// until the proxy exits.
type processEndpoint struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	logger *diag.Logger
}

func newProcessEndpoint(ctx context.Context, config *Config, logger *diag.Logger) (*processEndpoint, error) {
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Stderr = config.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %v: %w", config.Command, err)
	}
	logger.Debugf("started backend process %v (pid %v)", config.Command, cmd.Process.Pid)
	return &processEndpoint{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		logger: logger,
	}, nil
}

func (e *processEndpoint) RoundTrip(ctx context.Context, request *Request) (json.RawMessage, error) {
	data, err := encodeEnvelope(request)
	if err != nil {
		return nil, err
	}
	if _, err = e.stdin.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write to process stdin: %w", err)
	}
	line, err := e.stdout.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return nil, fmt.Errorf("failed to read from process stdout: %w", err)
	}
	return decodeLine(line)
}

// Close closes the child's stdin to signal end of session and awaits
// termination, escalating to SIGTERM and then SIGKILL if the child does not
// exit.
func (e *processEndpoint) Close() error {
	if err := e.stdin.Close(); err != nil {
		return fmt.Errorf("failed to close process stdin: %w", err)
	}
	exited := make(chan error, 1)
	go func() {
		exited <- e.cmd.Wait()
	}()
	wait := func() (error, bool) {
		select {
		case err := <-exited:
			return err, true
		case <-time.After(exitWait):
		}
		return nil, false
	}
	if err, ok := wait(); ok {
		return err
	}
	e.logger.Warnf("backend process did not exit, sending SIGTERM")
	// If signalling fails the process is likely gone; move straight to kill.
	if err := e.cmd.Process.Signal(syscall.SIGTERM); err == nil {
		if err, ok := wait(); ok {
			return err
		}
	}
	if err := e.cmd.Process.Kill(); err != nil {
		return err
	}
	if err, ok := wait(); ok {
		return err
	}
	return fmt.Errorf("unresponsive backend process")
}
