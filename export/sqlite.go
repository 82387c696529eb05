package export

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ttpr0/gtfs-graph/structs"
	"golang.org/x/exp/slog"
	_ "modernc.org/sqlite"
)

//*******************************************
// sqlite output
//*******************************************

//go:embed schema.sql
var schemaSQL string

// WriteSQLite writes the graph into a fresh sqlite database at file.
// An existing database at that path is replaced.
func WriteSQLite(ctx context.Context, graph ITransitGraph, build_id string, file string) error {
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove old database: %w", err)
	}
	conn, err := sql.Open("sqlite", file+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	meta := map[string]string{
		"build_id":   build_id,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to insert meta %s: %w", key, err)
		}
	}

	if err := _InsertStops(ctx, tx, graph); err != nil {
		return err
	}
	if err := _InsertConnections(ctx, tx, graph); err != nil {
		return err
	}
	if err := _InsertSchedules(ctx, tx, graph); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	slog.Debug("wrote sqlite database " + file)
	return nil
}

func _InsertStops(ctx context.Context, tx *sql.Tx, graph ITransitGraph) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stops (stop_id, lon, lat) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare stops statement: %w", err)
	}
	defer stmt.Close()

	for i, stop := range graph.Stops() {
		if _, err := stmt.ExecContext(ctx, i, stop.Loc.Lon(), stop.Loc.Lat()); err != nil {
			return fmt.Errorf("failed to insert stop %d: %w", i, err)
		}
	}
	return nil
}

func _InsertConnections(ctx context.Context, tx *sql.Tx, graph ITransitGraph) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO connections (conn_id, stop_a, stop_b, route_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare connections statement: %w", err)
	}
	defer stmt.Close()

	for i, conn := range graph.Connections() {
		if _, err := stmt.ExecContext(ctx, i, conn.StopA, conn.StopB, conn.RouteID); err != nil {
			return fmt.Errorf("failed to insert connection %d: %w", i, err)
		}
	}
	return nil
}

func _InsertSchedules(ctx context.Context, tx *sql.Tx, graph ITransitGraph) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO schedules (conn_id, weekday, position, departure, arrival) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare schedules statement: %w", err)
	}
	defer stmt.Close()

	for _, day := range structs.WEEKDAYS {
		for conn_id, weights := range graph.GetSchedule(day) {
			for pos, w := range weights {
				if _, err := stmt.ExecContext(ctx, conn_id, day.String(), pos, w.Departure, w.Arrival); err != nil {
					return fmt.Errorf("failed to insert schedule of connection %d: %w", conn_id, err)
				}
			}
		}
	}
	return nil
}
