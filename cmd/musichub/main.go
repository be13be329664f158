// cmd/musichub/main.go
package main

import (
	"os"

	"github.com/musichub/musichub-backend/cmd/musichub/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
