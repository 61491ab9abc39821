package main

import (
	"os"

	"github.com/tanRdev/otpbar/internal/adapters/driving/cli"
	"github.com/tanRdev/otpbar/internal/logger"
)

// version is set by the release build.
var version = "dev"

func main() {
	defer func() { _ = logger.Sync() }()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
