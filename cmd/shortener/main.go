package main

import (
	"log"

	"github.com/patric-chuzhbe/tinylinks/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Unable to initialize the application: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalf("The application terminated with an error: %v", err)
	}
}
