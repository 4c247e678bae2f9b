// Command pipecli generates pipe grids on the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"crosswarped.com/pipegen"
	"crosswarped.com/pipegen/internal"
	"crosswarped.com/pipegen/internal/logger"
	"crosswarped.com/pipegen/pkg/primitives"
)

func main() {
	size := flag.Int("size", 15, "The side length of the generated grid")
	seed := flag.Uint64("seed", 0, "The random seed; 0 derives one from the clock")
	count := flag.Int("count", 1, "How many grids to generate")
	interactive := flag.Bool("interactive", false, "Keep generating until told to stop")
	weightsFile := flag.String("weights", "", "YAML file overriding tile selection weights")
	exportFile := flag.String("export", "", "Write the last solved grid to this YAML file")
	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the whole run")
	logConfig := flag.String("log-config", "", "YAML logging configuration file")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	logger.Initialize(logger.LoadConfig(*logConfig))

	if *interactive && *count != 1 {
		fmt.Println("Cannot use -interactive and -count together")
		os.Exit(1)
	}
	if *size < 1 {
		fmt.Println("Size must be at least 1")
		os.Exit(1)
	}
	if *count < 1 {
		fmt.Println("Count must be at least 1")
		os.Exit(1)
	}

	weights := primitives.DefaultWeights()
	if *weightsFile != "" {
		var err error
		if weights, err = internal.LoadWeightsFile(*weightsFile); err != nil {
			fmt.Println("Error loading weights:", err)
			os.Exit(1)
		}
	}

	seedValue := *seed
	if seedValue == 0 {
		seedValue = uint64(time.Now().UnixNano())
	}
	slog.Info("starting", "size", *size, "seed", seedValue)

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating CPU profile file:", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
	}

	solver := pipegen.NewSolver(weights, rand.New(rand.NewPCG(seedValue, seedValue)))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	generated := 0
	failed := false
	var lastSolved *pipegen.Grid
	for {
		if err := ctx.Err(); err != nil {
			fmt.Println("Stopping:", err)
			failed = true
			break
		}

		start := time.Now()
		grid, err := solver.Generate(ctx, *size)
		generated++

		fmt.Println("--------------------------------")
		fmt.Println(grid.Repr())

		switch {
		case err == nil:
			lastSolved = grid
			slog.Info("grid solved", "size", *size, "elapsed", time.Since(start))
		case errors.Is(err, primitives.ErrContradiction):
			if x, y, ok := grid.FirstContradiction(); ok {
				slog.Error("contradiction halted the solve", "x", x, "y", y, "elapsed", time.Since(start))
			}
			fmt.Println("Error:", err)
			failed = true
		default:
			fmt.Println("Error:", err)
			failed = true
		}

		if *interactive {
			fmt.Println("Generate another? [Y/n]")
			var response string
			fmt.Scanln(&response)
			if response == "s" {
				fmt.Println(grid.DebugString())
				fmt.Scanln(&response)
			}
			if response == "n" || response == "N" {
				break
			}
			continue
		}
		if generated >= *count {
			break
		}
	}

	if *exportFile != "" && lastSolved != nil {
		if err := writeGridYAML(lastSolved, *exportFile, seedValue); err != nil {
			fmt.Println("Error exporting grid:", err)
			failed = true
		} else {
			slog.Info("exported grid", "path", *exportFile)
		}
	}

	if *profile {
		pprof.StopCPUProfile()
		mf, err := os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			fmt.Println("Error writing memory profile:", err)
		}
		mf.Close()
	}

	if failed {
		os.Exit(1)
	}
}
