package main

import (
	"log"

	"github.com/ikonesteve/email-imap-proxy/config"
	"github.com/ikonesteve/email-imap-proxy/server"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server startup failed: %v", err)
	}

	log.Println("Shutdown complete")
}
