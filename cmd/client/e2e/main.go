package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/meetingd/internal/client/client"
	"github.com/dmitrijs2005/meetingd/internal/client/config"
	"github.com/dmitrijs2005/meetingd/internal/client/e2e"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	password := cfg.Password
	if cfg.PromptPassword {
		password, err = e2e.GetPassword(os.Stdout)
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e2e.NewScenario(c, password, cfg.CallTimeout, os.Stdout).Run(ctx); err != nil {
		log.Printf("FAILED: %v", err)
		stop()
		c.Close()
		os.Exit(1)
	}
}
