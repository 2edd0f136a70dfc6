package main

import (
	"flag"
	"log"

	"socialsync/internal/config"
	"socialsync/internal/database"
	"socialsync/internal/seed"
)

func main() {
	userCount := flag.Int("users", 10, "number of demo users to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *userCount); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
