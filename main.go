package main

import (
	"fmt"
	"os"

	"github.com/odontosys/odontosys/cmd"
	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command error: %v\n", err)
		os.Exit(1)
	}
}
