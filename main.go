// Conway's Game of Life in console form: load an image as the starting world
// and watch it expand or die.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/golcore/game"
	"github.com/sheikhrachel/golcore/imageio"
)

func main() {
	log.SetFlags(0)

	config, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	if config == nil {
		return // -h
	}

	world := loadWorld(*config)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, closeRenderer, err := newRenderer(ctx, *config, os.Stdout, stop)
	if err != nil {
		log.Fatal(err)
	}

	if !config.Quiet && !config.Clear {
		displayGameInfo(os.Stdout, *config, world)
	}

	runner := game.NewRunner(world, renderer, *config)
	result, runErr := runner.Run(ctx)
	closeRenderer()
	if runErr != nil {
		log.Print(runErr)
	}

	if result.Reason == game.Interrupted {
		fmt.Println("Shutting down gracefully...")
	}
	fmt.Println(result.Summary())
	displayFinalStats(os.Stdout, result, runner.Stats())

	if config.OutputPath != "" {
		if err := imageio.Export(config.OutputPath, world); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Final world saved to %s\n", config.OutputPath)
	}
}
