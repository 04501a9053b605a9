package main

import (
	"flag"
	"log"

	"MyWhiteboard/internal/config"
	"MyWhiteboard/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting whiteboard")
	ui.RunApp(cfg)
}
