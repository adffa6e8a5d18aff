package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/drsixthsense/lifelog-public/db"
	"github.com/drsixthsense/lifelog-public/ui"
	"github.com/drsixthsense/lifelog-public/utils"
)

var (
	version = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("LifeLog v%s\n", version)
		os.Exit(0)
	}

	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting LifeLog v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
	} else {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
	}

	config, err = utils.LoadConfig(actualConfigPath)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Info("Using config file: %s", actualConfigPath)

	// Open the profile store
	store, err := db.New(config.Data.DBPath)
	if err != nil {
		logger.Error("Failed to open profile store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("Profile store opened: %s", config.Data.DBPath)

	app := ui.NewApp(config, actualConfigPath, store, logger)
	defer app.Cleanup()

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}
