package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/louisuxu-sys/BC-LINE/cmd"
	"github.com/louisuxu-sys/BC-LINE/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(os.Args[2:]); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "simulate":
			if err := handleSimulateCommand(os.Args[2:]); err != nil {
				log.Fatalf("Simulation error: %v", err)
			}
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("Received shutdown signal, shutting down gracefully...")
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bcline migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

func handleSimulateCommand(args []string) error {
	hands := 10000
	seed := int64(1)

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid hands value %q", args[0])
		}
		hands = n
	}
	if len(args) > 1 {
		s, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed value %q", args[1])
		}
		seed = s
	}

	log.WithFields(log.Fields{"hands": hands, "seed": seed}).Info("Running bankroll simulation")
	cmd.Simulate(hands, seed).Print(os.Stdout)
	return nil
}
