package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zsynth/internal/cli"
	"github.com/zarlcorp/zsynth/internal/config"
	"github.com/zarlcorp/zsynth/internal/tui"
)

// set at build time via ldflags.
var (
	version   = "dev"
	commit    = ""
	date      = ""
	builtBy   = ""
	treeState = ""
)

const usage = `usage: zsynth [--debug] [command]

commands:
  generate [--kind employee|student] [--count n] [--seed n] [--ref YYYY-MM-DD] [--json] [--tree] [--save]
  list [--json]
  show <batch-id> [--json] [--tree]
  verify <batch-id>
  forget <batch-id>
  version [--short|--json]

with no command zsynth starts the interactive generator.`

func main() {
	app := zapp.New(zapp.WithName("zsynth"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "zsynth: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	debug, args := cli.SplitGlobal(os.Args[1:])
	cfg.Debug = cfg.Debug || debug

	if len(args) > 0 {
		setupLogging(os.Stderr, cfg.Debug)
		code := runCLI(ctx, cfg, args[0], args[1:])
		_ = app.Close()
		os.Exit(code)
	}

	if err := runTUI(cfg); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func runCLI(_ context.Context, cfg config.Config, cmd string, args []string) int {
	env := cli.NewEnv(cfg)

	var err error
	switch cmd {
	case "version":
		err = cli.CmdVersion(os.Stdout, cli.BuildInfo{
			Version:   version,
			Commit:    commit,
			Date:      date,
			BuiltBy:   builtBy,
			TreeState: treeState,
		}, args)
	case "generate":
		err = cli.CmdGenerate(env, args)
	case "list":
		err = cli.CmdList(env, args)
	case "show":
		err = cli.CmdShow(env, args)
	case "verify":
		err = cli.CmdVerify(env, args)
	case "forget":
		err = cli.CmdForget(env, args)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "zsynth: unknown command %q\n\n%s\n", cmd, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "zsynth: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func runTUI(cfg config.Config) error {
	// the terminal belongs to bubbletea; debug logs go to a file instead
	if cfg.Debug {
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		f, err := tea.LogToFile(filepath.Join(cfg.DataDir, "debug.log"), "zsynth")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		setupLogging(f, true)
	} else {
		setupLogging(io.Discard, false)
	}

	opts := tui.Options{
		Seeds:     seedSource(cfg.Seed),
		Reference: cfg.Reference(),
		Ranges:    cfg.Ranges,
	}

	m := tui.New(version, cfg.DataDir, opts, cli.IsFirstRun(cfg.DataDir))
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}

// seedSource counts up from a configured seed so a session replays exactly,
// or draws random seeds when none is configured.
func seedSource(start uint64) func() (uint64, error) {
	if start == 0 {
		return cli.RandomSeed
	}
	next := start
	return func() (uint64, error) {
		s := next
		next++
		return s, nil
	}
}
