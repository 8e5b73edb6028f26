package main

import (
	"flag"
	"log"

	"storefront/cmd"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	app, err := cmd.NewApp(configPath)
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}
}
