package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dailyread/internal/config"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
)

func main() {
	var playPath, tuningPath, name, date, routes, throw, out string
	var seed uint
	var n int
	var maxTime float64
	var saveLog, verbose bool
	flag.StringVar(&playPath, "play", "", "play file (YAML or JSON); empty runs the daily play")
	flag.StringVar(&tuningPath, "tuning", "", "tuning file")
	flag.StringVar(&name, "name", "", "override play name for the generator")
	flag.StringVar(&date, "date", "", "daily play date YYYY-MM-DD (default today)")
	flag.StringVar(&routes, "routes", "", "route picks, e.g. wr1=SLANT,te=FLAT")
	flag.StringVar(&throw, "throw", "", "scripted pass, e.g. wr1@2.5")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.UintVar(&seed, "seed", 12345, "rng seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.Float64Var(&maxTime, "max", 30, "stop a run after this many seconds")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	play, err := loadPlay(playPath, name, date)
	if err != nil {
		logger.Error("failed to load play", "err", err)
		os.Exit(1)
	}
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		logger.Error("failed to load tuning", "err", err)
		os.Exit(1)
	}
	sel, err := parseRoutes(routes)
	if err != nil {
		logger.Error("bad -routes", "err", err)
		os.Exit(1)
	}
	throwTo, throwAt, err := parseThrow(throw)
	if err != nil {
		logger.Error("bad -throw", "err", err)
		os.Exit(1)
	}
	script := sim.Script{Selections: sel, ThrowTo: throwTo, ThrowAt: throwAt, MaxTime: maxTime}

	if n <= 1 {
		res, err := sim.RunScripted(play, script,
			sim.WithTuning(tuning), sim.WithSeed(uint32(seed)), sim.WithLogger(logger))
		if err != nil {
			logger.Error("run failed", "err", err)
			os.Exit(1)
		}
		if !saveLog {
			res.Events = nil
		}
		if err := os.WriteFile(out, sim.MarshalPretty(res), 0644); err != nil {
			logger.Error("failed to write result", "out", out, "err", err)
			os.Exit(1)
		}
		fmt.Printf("Single run finished. %s: outcome=%s T=%.2fs score=%.1f -> %s\n",
			res.PlayName, res.Outcome, res.Duration, res.Score, out)
		return
	}

	type stat struct {
		Runs      int
		SumScore  float64
		SumT      float64
		ByOutcome map[string]int
		Best      float64
		Worst     float64
	}
	st := stat{ByOutcome: map[string]int{}}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := 8
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := sim.RunScripted(play, script,
					sim.WithTuning(tuning), sim.WithSeed(uint32(seed)+uint32(i)*7919))
				if err != nil {
					logger.Warn("run failed", "run", i, "err", err)
					continue
				}

				mu.Lock()
				if st.Runs == 0 || res.Score > st.Best {
					st.Best = res.Score
				}
				if st.Runs == 0 || res.Score < st.Worst {
					st.Worst = res.Score
				}
				st.Runs++
				st.SumScore += res.Score
				st.SumT += res.Duration
				st.ByOutcome[res.Outcome]++
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if st.Runs == 0 {
		logger.Error("every run failed")
		os.Exit(1)
	}
	rates := map[string]any{}
	for k, v := range st.ByOutcome {
		rates[k] = map[string]any{"count": v, "ratio": float64(v) / float64(st.Runs)}
	}
	summary := map[string]any{
		"play":       play.Name,
		"play_id":    play.ID,
		"runs":       st.Runs,
		"avg_score":  st.SumScore / float64(st.Runs),
		"avg_time":   st.SumT / float64(st.Runs),
		"best":       st.Best,
		"worst":      st.Worst,
		"by_outcome": rates,
	}
	if err := os.WriteFile(out, sim.MarshalPretty(summary), 0644); err != nil {
		logger.Error("failed to write summary", "out", out, "err", err)
		os.Exit(1)
	}
	fmt.Printf("Batch %d done -> %s\n", st.Runs, filepath.Base(out))
}

func loadPlay(path, name, date string) (*config.Play, error) {
	switch {
	case path != "":
		return config.LoadPlay(path)
	case name != "":
		return playbook.FromName(name), nil
	case date != "":
		day, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", date, err)
		}
		// noon keeps the calendar day stable across time zones
		return playbook.Today(day.Add(12 * time.Hour)), nil
	}
	return playbook.Today(time.Now()), nil
}
