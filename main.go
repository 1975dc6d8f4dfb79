// @title BeyonDextra API
// @version 1.0
// @description Backend server for the BeyonDextra accessible learning platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"beyondextra_backend/internal/app"
	"beyondextra_backend/internal/config"
	"beyondextra_backend/pkg/configwatcher"
	"beyondextra_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	watchConfig := flag.Bool("watch-config", false, "reload config.yaml on change")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watchConfig {
		go configwatcher.WatchConfig(*configDir+"/config.yaml", func(newCfg *config.Config) {
			// Only settings read per-request take effect without a restart.
			*application.Config = *newCfg
			logger.Log.Info("Config reloaded")
		})
	}

	application.Run()
}
