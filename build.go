package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ttpr0/gtfs-graph/comps"
	"github.com/ttpr0/gtfs-graph/export"
	"github.com/ttpr0/gtfs-graph/geo"
	"github.com/ttpr0/gtfs-graph/parser"
	"github.com/ttpr0/gtfs-graph/structs"
	"golang.org/x/exp/slog"
)

//**********************************************************
// build transit graph
//**********************************************************

// BuildTransitGraph parses the configured feed and writes the graph in every
// configured output format. It returns the id of the build.
func BuildTransitGraph(ctx context.Context, config Config) (string, error) {
	filter, err := geo.LoadFilter(config.Build.FilterPolygon)
	if err != nil {
		return "", err
	}
	graph, err := parser.ParseGtfs(config.Build.Source.GTFS, filter)
	if err != nil {
		return "", err
	}
	summary := graph.Summary()
	slog.Info(fmt.Sprintf("transit graph: %v stops, %v connections", summary.Stops, summary.Connections))
	for _, day := range structs.WEEKDAYS {
		slog.Debug(fmt.Sprintf("%v: %v departures", day, summary.Departures[day]))
	}

	build_id := uuid.NewString()
	prefix := config.Output.Path
	if dir := filepath.Dir(prefix); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	for _, format := range config.Output.Formats {
		slog.Info("Writing " + format.String() + " output")
		switch format {
		case JSON:
			err = export.WriteJSON(graph, build_id, prefix+".json")
		case BINARY:
			err = StoreTransit(graph, prefix)
		case SQLITE:
			err = export.WriteSQLite(ctx, graph, build_id, prefix+".sqlite")
		}
		if err != nil {
			return "", fmt.Errorf("failed to write %v output: %w", format, err)
		}
	}
	return build_id, nil
}

// StoreTransit writes the transit component and one weighting per weekday
// in the binary component format.
func StoreTransit(graph *parser.GTFSGraph, prefix string) error {
	transit, weights := graph.ToTransit()
	if err := comps.Store(transit, prefix+"-transit"); err != nil {
		return err
	}
	for day, weight := range weights {
		if err := comps.Store(weight, prefix+"-transit-weight-"+day.String()); err != nil {
			return err
		}
	}
	return nil
}
