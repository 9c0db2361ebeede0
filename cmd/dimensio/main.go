package main

import (
	"os"

	"github.com/teranos/dimensio/cmd/dimensio/commands"
	"github.com/teranos/dimensio/logger"
)

func main() {
	rootCmd := commands.NewRootCmd()
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
