package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"polis/experiments"
	"polis/experiments/metrics"
	"polis/game"
	"polis/meta"
	"polis/utils"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: polis <command> [flags] [args]

commands:
  replay <transcript.yaml>...   replay recorded games and check their expectations
  soak                          play seeded random games and check invariants
  show <layout>                 print a board
  moves <layout> <row,col>      list the legal moves of one piece
`

func main() {
	if err := loadDotenv(); err != nil {
		log.Warn().Err(err).Msg("could not load .env")
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "replay":
		err = runReplay(args)
	case "soak":
		err = runSoak(args)
	case "show":
		err = runShow(args)
	case "moves":
		err = runMoves(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	level := fs.String("log-level", getenv("POLIS_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	return fs, level
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func runReplay(args []string) error {
	fs, level := newFlagSet("replay")
	outDir := fs.String("out", getenv("POLIS_OUT_DIR", ""), "directory for CSV records (none if empty)")
	fs.Parse(args)
	setupLogging(*level)

	if fs.NArg() == 0 {
		return fmt.Errorf("replay needs at least one transcript")
	}

	var writer *metrics.Writer
	if *outDir != "" {
		w, err := metrics.NewWriter(*outDir, "replay")
		if err != nil {
			return err
		}
		writer = w
	}

	results, err := experiments.RunReplays(fs.Args(), writer)
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "FAIL"
		}
		fmt.Printf("%-4s %s (winner: %s, %s, %d moves)\n", status, r.Name, teamName(r.Winner), r.Game.Reason, r.Game.TotalMoves)
	}
	failed := utils.Filter(results, func(r experiments.ReplayResult) bool { return r.Err != nil })
	fmt.Printf("%d of %d transcripts passed\n", len(results)-len(failed), len(results))
	return err
}

func runSoak(args []string) error {
	fs, level := newFlagSet("soak")
	games := fs.Int("games", getenvInt("POLIS_GAMES", meta.SOAK_GAMES), "number of games")
	seed := fs.Uint64("seed", getenvUint("POLIS_SEED", meta.SOAK_SEED), "random seed")
	layout := fs.String("layout", meta.DEFAULT_LAYOUT, "starting position")
	maxTurns := fs.Int("max-turns", meta.MAX_TURNS, "turn limit per game")
	goroutines := fs.Int("goroutines", meta.GO_ROUTINES, "games played in parallel")
	outDir := fs.String("out", getenv("POLIS_OUT_DIR", meta.OUT_DIR), "directory for CSV records (none if empty)")
	fs.Parse(args)
	setupLogging(*level)

	cfg := experiments.SoakConfig{
		Games:      *games,
		Seed:       *seed,
		Layout:     *layout,
		MaxTurns:   *maxTurns,
		Goroutines: *goroutines,
	}
	if *outDir != "" {
		w, err := metrics.NewWriter(*outDir, "soak")
		if err != nil {
			return err
		}
		cfg.Writer = w
	}

	report, err := experiments.RunSoak(cfg)
	fmt.Printf("games: %d  A: %d  B: %d  stalls: %d  unfinished: %d  moves: %d  captures: %d  failures: %d\n",
		report.Games, report.Wins[game.TeamA], report.Wins[game.TeamB],
		report.Reasons[metrics.EndStall], report.Reasons[metrics.EndMaxTurns],
		report.Moves, report.Captures, len(report.Failures))
	return err
}

func runShow(args []string) error {
	fs, level := newFlagSet("show")
	fs.Parse(args)
	setupLogging(*level)

	if fs.NArg() != 1 {
		return fmt.Errorf("show needs exactly one layout")
	}
	b, err := game.DecodeLayout(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(b)
	if w := game.CheckWin(b); w != game.NoTeam {
		fmt.Printf("winner: %s\n", w)
	}
	return nil
}

func runMoves(args []string) error {
	fs, level := newFlagSet("moves")
	fs.Parse(args)
	setupLogging(*level)

	if fs.NArg() != 2 {
		return fmt.Errorf("moves needs a layout and a position")
	}
	b, err := game.DecodeLayout(fs.Arg(0))
	if err != nil {
		return err
	}
	from, err := game.ParsePosition(fs.Arg(1))
	if err != nil {
		return err
	}

	fmt.Printf("%s at %s\n", b.At(from), from)
	for _, to := range game.ValidMoves(b, from) {
		sim := b.Copy()
		out := game.Execute(sim, from, to)
		fmt.Printf("  %s  hops: %d  captures: %v\n", game.GameMove{From: from, To: to}, len(out.Hops), out.Captured)
	}
	return nil
}

func teamName(t game.Team) string {
	if t == game.NoTeam {
		return "none"
	}
	return t.String()
}

// loadDotenv loads .env files into the environment. Missing files are fine.
func loadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
		log.Warn().Msgf("ignoring %s=%q, want a non-negative integer", key, v)
	}
	return def
}
