package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"cave-ca/internal/sweep"

	"github.com/charmbracelet/log"
)

func main() {
	width := flag.Int("w", 192, "grid width for every run")
	height := flag.Int("h", 192, "grid height for every run")
	threshList := flag.String("threshes", "3,4,5,6", "comma separated rock thresholds")
	seedList := flag.String("seeds", "1,2,3,4", "comma separated seeds")
	maxSteps := flag.Int("max-steps", 2000, "step budget per phase (0 is unbounded)")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	top := flag.Int("top", 5, "number of ranked results to print")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sweep"})

	threshes, err := parseInts(*threshList)
	if err != nil {
		logger.Fatal("bad -threshes", "err", err)
	}
	seeds, err := parseInts(*seedList)
	if err != nil {
		logger.Fatal("bad -seeds", "err", err)
	}
	seeds64 := make([]int64, len(seeds))
	for i, s := range seeds {
		seeds64[i] = int64(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs := sweep.Jobs(threshes, seeds64)
	fmt.Printf("Sweeping %d runs (%d workers, %dx%d, budget %d)\n", len(jobs), *workers, *width, *height, *maxSteps)

	start := time.Now()
	outcomes, err := sweep.Run(ctx, sweep.Options{
		Width:    *width,
		Height:   *height,
		MaxSteps: *maxSteps,
		Workers:  *workers,
		Logger:   logger,
	}, jobs)
	if err != nil {
		logger.Fatal("sweep interrupted", "err", err)
	}
	elapsed := time.Since(start)

	for _, o := range outcomes {
		if !o.Converged() {
			fmt.Println(o)
		}
	}

	sweep.Rank(outcomes)
	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(outcomes) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, outcomes[i])
	}
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
