package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prom-reaper/prom-reaper/internal/config"
)

// cliArgs holds the parsed command-line flags.
type cliArgs struct {
	configFile string
	logLevel   string
	genConfig  bool
}

func parseFlags(args []string) *cliArgs {
	fs := flag.NewFlagSet("prom-reaper", flag.ExitOnError)
	a := &cliArgs{}

	defaultLevel := os.Getenv("PROM_REAPER_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}

	fs.StringVar(&a.configFile, "config", "./config.json", "Path to the configuration file")
	fs.StringVar(&a.logLevel, "loglevel", defaultLevel, "Log level: debug, info, warn, err (overridable via PROM_REAPER_LOG_LEVEL)")
	fs.BoolVar(&a.genConfig, "gen-config", false, "Print a sample configuration file to stdout and exit")
	fs.Parse(args)

	return a
}

// runGenConfig prints the sample config and returns the process exit code.
func runGenConfig() int {
	fmt.Print(config.Sample)
	return 0
}
