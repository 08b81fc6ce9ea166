package proxy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// defaultTimeoutSec bounds HTTP round trips unless overridden; the process
// and socket backends are not subject to it.
const defaultTimeoutSec = 30

// Options defines the proxy configuration surface.  Exactly one backend
// target (URL, Command or Pipe) must be selected.
type Options struct {
	URL           string `short:"u" long:"url" description:"remote MCP server URL" yaml:"url,omitempty" json:"url,omitempty"`
	Command       string `short:"c" long:"command" description:"command starting a local MCP server on its standard streams" yaml:"command,omitempty" json:"command,omitempty"`
	Args          string `short:"a" long:"args" description:"whitespace separated arguments passed to the command" yaml:"args,omitempty" json:"args,omitempty"`
	Pipe          string `short:"p" long:"pipe" description:"unix socket or named pipe path of a local MCP server" yaml:"pipe,omitempty" json:"pipe,omitempty"`
	TimeoutSec    int    `short:"t" long:"timeout" description:"HTTP request timeout in seconds (default 30)" yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Verbose       bool   `short:"v" long:"verbose" description:"verbose diagnostics on stderr" yaml:"verbose,omitempty" json:"verbose,omitempty"`
	ConfigURL     string `long:"config" description:"optional config document URL (YAML or JSON)" yaml:"-" json:"-"`
	AuthSecret    string `long:"auth-secret" description:"scy secret resource holding a bearer token for the remote server" yaml:"authSecret,omitempty" json:"authSecret,omitempty"`
	AuthSecretKey string `long:"auth-secret-key" description:"scy key decoding the auth secret, e.g. blowfish://default" yaml:"authSecretKey,omitempty" json:"authSecretKey,omitempty"`
}

// Init merges an optional config document into the options and applies
// defaults; values set on the command line win over document values.
func (o *Options) Init(ctx context.Context) error {
	if o.ConfigURL != "" {
		document := &Options{}
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, o.ConfigURL)
		if err != nil {
			return fmt.Errorf("failed to load config: %v %w", o.ConfigURL, err)
		}
		if err = yaml.Unmarshal(data, document); err != nil {
			return fmt.Errorf("failed to parse config: %v %w", o.ConfigURL, err)
		}
		o.mergeFrom(document)
	}
	if o.TimeoutSec <= 0 {
		o.TimeoutSec = defaultTimeoutSec
	}
	return nil
}

// Validate enforces the exactly-one-target rule.
func (o *Options) Validate() error {
	count := 0
	for _, target := range []string{o.URL, o.Command, o.Pipe} {
		if strings.TrimSpace(target) != "" {
			count++
		}
	}
	switch {
	case count == 0:
		return fmt.Errorf("no backend selected: one of --url, --command or --pipe is required")
	case count > 1:
		return fmt.Errorf("ambiguous backend: --url, --command and --pipe are mutually exclusive")
	}
	return nil
}

// Timeout returns the HTTP round trip timeout.
func (o *Options) Timeout() time.Duration {
	timeout := o.TimeoutSec
	if timeout <= 0 {
		timeout = defaultTimeoutSec
	}
	return time.Duration(timeout) * time.Second
}

// Arguments splits the whitespace separated args string.
func (o *Options) Arguments() []string {
	return strings.Fields(o.Args)
}

// Target describes the selected backend for diagnostics.
func (o *Options) Target() string {
	switch {
	case o.URL != "":
		return "url " + o.URL
	case o.Command != "":
		return strings.TrimSpace("command " + o.Command + " " + o.Args)
	case o.Pipe != "":
		return "pipe " + o.Pipe
	}
	return "none"
}

func (o *Options) mergeFrom(document *Options) {
	if o.URL == "" {
		o.URL = document.URL
	}
	if o.Command == "" {
		o.Command = document.Command
	}
	if o.Args == "" {
		o.Args = document.Args
	}
	if o.Pipe == "" {
		o.Pipe = document.Pipe
	}
	if o.TimeoutSec <= 0 {
		o.TimeoutSec = document.TimeoutSec
	}
	if !o.Verbose {
		o.Verbose = document.Verbose
	}
	if o.AuthSecret == "" {
		o.AuthSecret = document.AuthSecret
	}
	if o.AuthSecretKey == "" {
		o.AuthSecretKey = document.AuthSecretKey
	}
}
