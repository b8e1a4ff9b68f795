// Package main is the playshell entry point.
package main

import (
	"github.com/playshell/playshell/cmd"
	"github.com/playshell/playshell/config"
	"github.com/playshell/playshell/internal/cache"
	"github.com/playshell/playshell/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
