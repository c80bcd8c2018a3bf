package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/golcore/game"
	"github.com/sheikhrachel/golcore/imageio"
	"github.com/sheikhrachel/golcore/model"
	"github.com/sheikhrachel/golcore/utils"
)

// defaultWidth is the side of the built-in starting world
const defaultWidth = 6

// defaultSeed is the starting world used when no image is given
var defaultSeed = []bool{
	false, false, false, false, false, false,
	false, false, true, false, false, false,
	false, true, true, true, false, false,
	false, true, false, true, false, false,
	false, true, false, true, false, false,
	false, false, false, false, false, false,
}

// parseConfig builds the configuration from defaults, an optional JSON file and flags, in that order.
// A nil config with no error means help was requested.
func parseConfig(args []string, output io.Writer) (*utils.Config, error) {
	// First pass only looks for -config so that flags can override the file
	probe := flag.NewFlagSet("golcore", flag.ContinueOnError)
	probe.SetOutput(io.Discard)
	var scratch utils.Config
	scratch.Bind(probe)
	configPath := probe.String("config", "", "")
	_ = probe.Parse(args)

	config := utils.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = utils.LoadConfig(*configPath); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet("golcore", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "golcore - Conway's Game of Life in console form.")
		fmt.Fprintln(output, "Load an image as the starting world and watch it expand or die.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}
	config.Bind(fs)
	fs.String("config", *configPath, "path to a JSON configuration file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[parseConfig] invalid arguments")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// worldOptions translates the configuration into World options
func worldOptions(config utils.Config) []model.Option {
	var opts []model.Option
	if config.UseParallel {
		opts = append(opts, model.WithParallel(config.Workers))
	}
	if config.UseSleepWake {
		opts = append(opts, model.WithSleepWake())
	}
	return opts
}

// defaultWorld builds the built-in starting world
func defaultWorld(opts ...model.Option) *model.World {
	w, err := model.NewWorld(defaultSeed, defaultWidth, len(defaultSeed)/defaultWidth, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// loadWorld imports the starting world, falling back to the built-in one with a warning
func loadWorld(config utils.Config) *model.World {
	opts := worldOptions(config)

	if config.InputPath == "" {
		log.Print("! You may want to specify a starting configuration (-i), using the default world.")
		return defaultWorld(opts...)
	}

	world, err := imageio.Import(config.InputPath, uint8(config.Threshold), opts...)
	if err != nil {
		log.Printf("! Specified path is either invalid or not a readable image, using the default world: %v", err)
		return defaultWorld(opts...)
	}
	return world
}

// newRenderer picks the frame sink for the configuration. The returned func releases it.
// In clear mode q, Esc or Ctrl+C on the screen calls cancel.
func newRenderer(
	ctx context.Context,
	config utils.Config,
	out io.Writer,
	cancel context.CancelFunc,
) (model.Renderer, func(), error) {
	var pool *model.SnapshotPool
	if config.UseMemoryPool {
		pool = model.NewSnapshotPool()
	}
	alive, dead := config.Symbols()

	switch {
	case config.Quiet:
		return model.NopRenderer{}, func() {}, nil
	case config.Clear:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, errors.Wrap(err, "[newRenderer] failed to open terminal screen")
		}
		if err = screen.Init(); err != nil {
			return nil, nil, errors.Wrap(err, "[newRenderer] failed to initialize terminal screen")
		}
		screen.HideCursor()
		go watchKeys(ctx, screen, cancel)
		return model.NewScreenRenderer(screen, alive, dead, pool), screen.Fini, nil
	default:
		return model.NewTextRenderer(out, alive, dead, pool), func() {}, nil
	}
}

// watchKeys cancels the run when the user asks to quit. It returns once the screen is finalized.
func watchKeys(ctx context.Context, screen tcell.Screen, cancel context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if quitKey(ev) {
				cancel()
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, world *model.World) {
	fmt.Fprintf(out, "Features: Parallel: %v, Sleep/wake: %v, Memory pool: %v\n",
		config.UseParallel, config.UseSleepWake, config.UseMemoryPool)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		world.Width(), world.Height(), world.Population())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// displayFinalStats shows how the run went
func displayFinalStats(out io.Writer, result game.Result, stats *utils.Stats) {
	fmt.Fprintf(out, "Stopped: %s after %d generations in %.1f seconds\n",
		result.Reason, result.Cycles, stats.Runtime().Seconds())
	fmt.Fprintf(out, "Peak population: %d | Avg population: %.1f | Cells changed: %d\n",
		stats.PeakPopulation, stats.AveragePopulation, stats.TotalChanged)
}
