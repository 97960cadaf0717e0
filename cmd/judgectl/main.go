// Command judgectl is the host CLI: it scans a contestants directory and a
// problems directory, loads settings from a YAML config, and drives the
// engine's evaluate_all over them, printing progress to stdout. Grounded
// on the teacher's cmd/cli/main.go flag-then-config-then-run shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fouguai/judgecore/internal/engine"
	"github.com/fouguai/judgecore/internal/hostconfig"
	"github.com/fouguai/judgecore/internal/hostfs"
	"github.com/fouguai/judgecore/internal/logger"
	"github.com/fouguai/judgecore/internal/model"
	"github.com/fouguai/judgecore/internal/observer"
)

const defaultConfigPath = "judgectl.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to judge settings file")
	contestantsRoot := flag.String("contestants", "", "override contestants root directory")
	problemsRoot := flag.String("problems", "", "override problems root directory")
	parallel := flag.Int("parallel", 0, "override worker thread count")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: "console", OutputPath: "stdout", Component: "judgectl"}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := hostconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if *contestantsRoot != "" {
		cfg.ContestantsRoot = *contestantsRoot
	}
	if *problemsRoot != "" {
		cfg.ProblemsRoot = *problemsRoot
	}
	if *parallel > 0 {
		cfg.ThreadCount = *parallel
	}

	ctx := context.Background()
	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg hostconfig.Config) error {
	problemIDs, err := hostfs.ScanProblemIDs(cfg.ProblemsRoot)
	if err != nil {
		return err
	}

	problems := make([]*model.Problem, 0, len(problemIDs))
	for _, id := range problemIDs {
		dir := filepath.Join(cfg.ProblemsRoot, id)
		settings := model.ResolveSettings(cfg.GlobalSettings(), cfg.OverrideFor(id))
		p, err := model.NewProblem(id, id, dir, settings)
		if err != nil {
			return err
		}
		tests, err := hostfs.DiscoverTestCases(dir, id)
		if err != nil {
			return err
		}
		p.Load(tests)
		problems = append(problems, p)
	}

	contestants, err := hostfs.ScanContestants(cfg.ContestantsRoot, problemIDs)
	if err != nil {
		return err
	}

	eng := engine.New()
	obs := observer.NewConsole(os.Stdout)
	return eng.EvaluateAll(ctx, contestants, problems, obs, cfg.ThreadCount)
}
