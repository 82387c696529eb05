package parser

import (
	"fmt"
	"path/filepath"

	"github.com/ttpr0/gtfs-graph/geo"
	. "github.com/ttpr0/gtfs-graph/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// gtfs parser
//*******************************************

// GTFSFeed holds the decoded tables of a gtfs feed.
type GTFSFeed struct {
	Calendar  List[GTFSCalendarRow]
	Stops     List[GTFSStopRow]
	StopTimes List[GTFSStopTimeRow]
	Trips     List[GTFSTripRow]
}

// ReadGtfsFeed reads calendar.txt, stops.txt, stop_times.txt and trips.txt
// from the feed directory.
func ReadGtfsFeed(gtfs_path string) (GTFSFeed, error) {
	var feed GTFSFeed
	var err error
	feed.Calendar, err = ReadCSVFromFile[GTFSCalendarRow](filepath.Join(gtfs_path, "calendar.txt"), ',')
	if err != nil {
		return feed, fmt.Errorf("failed to read calendar: %w", err)
	}
	feed.Stops, err = ReadCSVFromFile[GTFSStopRow](filepath.Join(gtfs_path, "stops.txt"), ',')
	if err != nil {
		return feed, fmt.Errorf("failed to read stops: %w", err)
	}
	feed.StopTimes, err = ReadCSVFromFile[GTFSStopTimeRow](filepath.Join(gtfs_path, "stop_times.txt"), ',')
	if err != nil {
		return feed, fmt.Errorf("failed to read stop_times: %w", err)
	}
	feed.Trips, err = ReadCSVFromFile[GTFSTripRow](filepath.Join(gtfs_path, "trips.txt"), ',')
	if err != nil {
		return feed, fmt.Errorf("failed to read trips: %w", err)
	}
	return feed, nil
}

// BuildGtfs runs the whole pipeline on decoded feed tables.
func BuildGtfs(feed GTFSFeed, filter geo.IFilter) (*GTFSGraph, error) {
	services := BuildServices(feed.Calendar)
	slog.Debug(fmt.Sprintf("read %v services", services.Length()))

	stops, err := ResolveStops(feed.Stops, filter)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("resolved %v stops to %v nodes, dropped %v", stops.StopCount(), stops.NodeCount(), stops.DroppedCount()))

	trips, err := AssembleTrips(feed.StopTimes, feed.Trips, stops, services)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("assembled %v trips", trips.TripCount()))

	graph, err := BuildTransitGraph(trips, stops, services)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("built %v connections", graph.ConnectionCount()))
	return graph, nil
}

// ParseGtfs reads the feed directory and builds its transit graph.
func ParseGtfs(gtfs_path string, filter geo.IFilter) (*GTFSGraph, error) {
	slog.Info("Reading gtfs feed " + gtfs_path)
	feed, err := ReadGtfsFeed(gtfs_path)
	if err != nil {
		return nil, err
	}
	return BuildGtfs(feed, filter)
}
