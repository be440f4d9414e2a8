package main

import (
	"os"

	"github.com/prom-reaper/prom-reaper/internal/config"
	prlog "github.com/prom-reaper/prom-reaper/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := parseFlags(args)

	if a.genConfig {
		return runGenConfig()
	}

	prlog.SetLevel(a.logLevel)

	cfg, err := config.Load(a.configFile)
	if err != nil {
		prlog.Errorf("load config: %v", err)
		return 1
	}

	return runServer(cfg)
}
