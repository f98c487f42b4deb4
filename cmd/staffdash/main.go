package main

import (
	"log"

	"github.com/MrSnakeDoc/staffdash/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ staffdash failed to start: %v", err)
	}
}
