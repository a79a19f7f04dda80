package cli

// Version is set at build time:
//
//	go build -ldflags "-X github.com/kovacq/gravl/internal/cli.Version=1.2.3"
var Version = "0.1.0-dev"
