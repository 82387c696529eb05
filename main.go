package main

import (
	"context"
	"flag"
	"os"

	"golang.org/x/exp/slog"
)

func main() {
	config_file := flag.String("config", "./config.yaml", "path to the config file")
	flag.Parse()

	level := &slog.LevelVar{}
	slog.SetDefault(slog.New(NewLogHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config, err := ReadConfig(*config_file)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	level.Set(config.Level())
	slog.Debug("read config file " + *config_file)

	build_id, err := BuildTransitGraph(context.Background(), config)
	if err != nil {
		slog.Error("failed to build transit graph: " + err.Error())
		os.Exit(1)
	}
	slog.Info("finished build " + build_id)
}
