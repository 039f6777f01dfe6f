package main

import (
	"os"

	"github.com/driftguard/driftguard/cmd/driftguard/commands"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, buildTime)
	os.Exit(commands.Execute())
}
