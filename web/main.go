package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/internal/logger"
	"github.com/df07/go-stochastic-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of YAML scene files")
	level := flag.String("level", "info", "Log level")
	logFile := flag.String("log", "", "Rotating log file path")
	flag.Parse()

	log, err := logger.Init(*level, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webServer := server.NewServer(*port, *sceneDir, log)
	log.Info("render server starting", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))

	if err := webServer.Start(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
