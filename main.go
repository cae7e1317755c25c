// Package main is the entry point for the jellysan application.
package main

import (
	"github.com/jellysan-cli/jellysan/cmd"
	"github.com/jellysan-cli/jellysan/config"
	"github.com/jellysan-cli/jellysan/log"
	"github.com/jellysan-cli/jellysan/prefs"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired track preferences are pruned in the background.
	go prefs.CollectGarbage()

	cmd.Execute()
}
