package main

import (
	"log"

	"github.com/museflow/call-links/internal/platform"
)

func main() {
	if err := platform.RunCallService("calls"); err != nil {
		log.Fatalf("calls failed: %v", err)
	}
}
