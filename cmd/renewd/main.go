package main

import (
	_ "github.com/ksyq12/renewd/internal/authenticator" // Register authenticators
	"github.com/ksyq12/renewd/internal/cli"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
