package main

import (
	"flag"
	"log"
	"os"

	"FundLens/internal/di"
	"FundLens/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	op := flag.String("op", "funds", "operation: simulate, stress, risk_premium, greeks, recommend, risk_parity, insights, funds")
	requestPath := flag.String("request", "", "JSON request file (omit for operations without a payload)")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	var payload []byte
	if *requestPath != "" {
		payload, err = os.ReadFile(*requestPath)
		if err != nil {
			log.Fatalf("request read failed: %v", err)
		}
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(*op, payload, os.Stdout); err != nil {
		log.Printf("operation failed: %v", err)
		os.Exit(1)
	}
}
