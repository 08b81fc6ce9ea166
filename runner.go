package proxy

import (
	"context"

	"github.com/jessevdk/go-flags"
)

// Run parses command line arguments, builds the proxy service and drives the
// stdio session to completion; it returns on end of input or a startup
// failure.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()
	if err := options.Init(ctx); err != nil {
		return err
	}
	if err := options.Validate(); err != nil {
		return err
	}
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := service.Close(); closeErr != nil {
			service.logger.Warnf("failed to release backend: %v", closeErr)
		}
	}()
	return service.Run(ctx)
}
