// Command lookahead runs the standalone point-in-time occupancy scan: it
// reads a vessel schedule workbook, samples per-berth occupancy along the
// schedule's timeline with a forward-looking window, prints a summary table,
// and writes the occupancy matrix CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"portcli/internal/analysis"
	"portcli/internal/exporter"
	"portcli/internal/files"
	"portcli/internal/schedule"
	"portcli/internal/services"
	"portcli/internal/validation"
)

func main() {
	file := flag.String("file", "buques.xlsx", "vessel schedule workbook (.xlsx), or a directory of workbooks")
	lookaheadH := flag.Float64("lookahead", 24, "lookahead window in hours")
	intervalH := flag.Float64("interval", 6, "scan interval in hours")
	out := flag.String("out", "occupancy.csv", "output CSV for the occupancy matrix")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	ctx := context.Background()

	path, err := resolveWorkbook(logger, *file)
	if err != nil {
		slog.Error("No usable workbook", "path", *file, "error", err)
		os.Exit(1)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(filepath.Dir(*out)); err != nil {
		slog.Error("Output location unusable", "path", *out, "error", err)
		os.Exit(1)
	}

	sched, err := schedule.LoadFile(ctx, path, logger)
	if err != nil {
		slog.Error("Failed to load schedule", "file", path, "error", err)
		os.Exit(1)
	}
	slog.Info("Schedule loaded",
		"file", path,
		"sheet", sched.Sheet,
		"valid_rows", len(sched.Calls),
		"skipped_rows", sched.Skipped)

	params := analysis.LookaheadParams{
		Lookahead: time.Duration(*lookaheadH * float64(time.Hour)),
		Interval:  time.Duration(*intervalH * float64(time.Hour)),
	}

	svc := services.NewAnalysisService(logger)
	report, err := svc.Scan(ctx, sched, params)
	if err != nil {
		slog.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	printOccupancy(report)

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteOccupancyMatrix(*out, report.Berths, report.Samples); err != nil {
		slog.Error("Failed to write occupancy matrix", "path", *out, "error", err)
		os.Exit(1)
	}

	slog.Info("Occupancy scan complete",
		"samples", len(report.Samples),
		"berths", len(report.Berths),
		"output", *out)
}

// resolveWorkbook accepts either a workbook path or a directory holding
// daily schedule drops, in which case the newest workbook wins.
func resolveWorkbook(logger *slog.Logger, path string) (string, error) {
	validator := validation.NewFileValidator(logger)

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		book, err := files.NewDiscovery(path).LatestWorkbook(".")
		if err != nil {
			return "", err
		}
		slog.Info("Picked newest workbook", "dir", path, "file", book.Name)
		return book.Path, validator.ValidateWorkbookFile(book.Path)
	}
	return path, validator.ValidateWorkbookFile(path)
}

// printOccupancy renders the first scan samples as a fixed-width table so a
// quick terminal run shows the shape of the data before opening the CSV.
func printOccupancy(report *services.ScanReport) {
	fmt.Printf("\n=== BERTH OCCUPANCY (lookahead %s, interval %s) ===\n",
		report.Params.Lookahead, report.Params.Interval)

	fmt.Printf("%-17s", "Time")
	for _, berth := range report.Berths {
		fmt.Printf(" | %8s", berth)
	}
	fmt.Println()

	const maxRows = 12
	for i, sample := range report.Samples {
		if i >= maxRows {
			fmt.Printf("... (%d more samples in CSV)\n", len(report.Samples)-maxRows)
			break
		}
		fmt.Printf("%-17s", sample.At.Format("2006-01-02 15:04"))
		for _, berth := range report.Berths {
			fmt.Printf(" | %8d", sample.Berths[berth])
		}
		fmt.Println()
	}
}
