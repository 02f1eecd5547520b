package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"burgers/internal/app"
)

func main() {
	opts := defaultOptions()
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Float64Var(&opts.DT, "dt", opts.DT, "seconds of wall time per tick")
	flag.IntVar(&opts.MaxTicks, "max-ticks", opts.MaxTicks, "stop after this many ticks")
	flag.StringVar(&opts.Out, "out", opts.Out, "trace output path (.jsonl, or .jsonl.zst for zstd)")
	flag.IntVar(&opts.Every, "every", opts.Every, "include atom positions every N ticks (0 disables)")
	flag.BoolVar(&opts.Realtime, "realtime", opts.Realtime, "pace ticks against the system clock")
	flag.IntVar(&opts.TPS, "tps", opts.TPS, "ticks per second when pacing in real time")
	verbose := flag.Bool("v", false, "log debug events")
	var overrides app.KVList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := opts.resolve(*configPath, overrides.Map()); err != nil {
		log.Fatal(err)
	}
	sum, err := run(opts)
	if err != nil {
		log.Fatal(err)
	}
	sum.print(os.Stdout)
}
