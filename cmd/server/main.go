package main

import (
	"github.com/openpathway/pathmerge/internal/server"
	"github.com/openpathway/pathmerge/internal/util"
	"github.com/openpathway/pathmerge/pkg/logger"
	"github.com/openpathway/pathmerge/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
