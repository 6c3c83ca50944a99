package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"ranksim/simulator"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := simulator.NewApp(configPath(), logger)

	if err != nil {
		log.Fatalf("Error initializing app: %v", err)
	}

	g := gin.Default()

	simulator.RegisterRoutes(g, app.Simulator, logger)

	err = g.Run(app.Config.Server.Addr)

	if err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}

func configPath() string {
	if path := os.Getenv("RANKSIM_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}
