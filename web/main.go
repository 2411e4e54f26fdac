// Command cubemap-web serves the converter over HTTP for previews.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/avern/go-cubemap/pkg/logger"
	"github.com/avern/go-cubemap/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	level := flag.String("level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	if err := logger.Init(*level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	webServer := server.NewServer(*port, logger.Log)

	logger.Info("cubemap preview server", zap.Int("port", *port))
	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
