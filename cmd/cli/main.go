package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/condo-os/internal/config"
	"github.com/dvloznov/condo-os/internal/detect"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/extract"
	"github.com/dvloznov/condo-os/internal/gcs"
	"github.com/dvloznov/condo-os/internal/logger"
	"github.com/dvloznov/condo-os/internal/runlog"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.NewWithLevel(os.Getenv("LOG_LEVEL"), os.Stderr)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "upload":
		runUpload(log)
	case "inspect":
		runInspect(log)
	case "runs":
		runRuns(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Condo workbook tools")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  upload    Upload a workbook to GCS for a later import-excel gs:// run")
	fmt.Println("  inspect   Show each sheet's detected type and record count")
	fmt.Println("  runs      List recent import runs from BigQuery")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func loadConfig(log zerolog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	return cfg
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	prefix := fs.String("prefix", "workbooks", "Object name prefix")
	objectName := fs.String("object", "", "GCS object name (defaults to prefix/filename)")
	filePath := fs.String("file", "", "Path to local .xlsx file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH [-object NAME]")
	}
	if _, err := os.Stat(*filePath); err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("Cannot read workbook")
	}

	if *objectName == "" {
		*objectName = gcs.ObjectName(*prefix, *filePath)
	}

	cfg := loadConfig(log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	client, err := gcs.NewClient(ctx, cfg.GCP.ClientOptions()...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage client")
	}
	defer client.Close()

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading workbook to GCS")

	if err := client.UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to %s\n", *filePath, gcs.URI(*bucketName, *objectName))
}

func runInspect(log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	filePath := fs.String("file", "", "Workbook path or gs:// URI")
	fs.Parse(os.Args[2:])

	if *filePath == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	cfg := loadConfig(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var fetcher sheet.Fetcher
	if gcs.IsURI(*filePath) {
		client, err := gcs.NewClient(ctx, cfg.GCP.ClientOptions()...)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage client")
		}
		defer client.Close()
		fetcher = client
	}

	wb, err := sheet.Open(ctx, *filePath, fetcher)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open workbook")
	}
	defer wb.Close()

	fmt.Printf("\n=== Workbook %s ===\n", gcs.DisplayName(*filePath))
	for _, name := range wb.SheetNames() {
		rows, err := wb.Rows(name)
		if err != nil {
			log.Fatal().Err(err).Str("sheet", name).Msg("Failed to read sheet")
		}

		kind := detect.Detect(name, rows)
		if kind == domain.SheetUnrecognized {
			fmt.Printf("  %-24s %-10s %5d rows\n", name, "-", len(rows))
			continue
		}
		res := extract.Extract(kind, rows, cfg.Import.Extract())
		fmt.Printf("  %-24s %-10s %5d rows  %4d records  %d warnings\n",
			name, kind, len(rows), res.Count(), len(res.Warnings))
	}
	fmt.Println()
}

func runRuns(log zerolog.Logger) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Number of runs to show")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(log)
	if cfg.GCP.ProjectID == "" {
		log.Fatal().Msg("Error: GCP_PROJECT_ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	rec, err := runlog.NewBigQueryRecorder(ctx, cfg.GCP.ProjectID, cfg.GCP.Dataset, cfg.GCP.ClientOptions()...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer rec.Close()

	runs, err := rec.Recent(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list import runs")
	}

	fmt.Printf("\n=== Import runs (%d) ===\n", len(runs))
	for i, r := range runs {
		fmt.Printf("\n%d. %s\n", i+1, r.Source)
		fmt.Printf("   Run ID:   %s\n", r.RunID)
		fmt.Printf("   Started:  %s\n", r.StartedTS.Format(time.RFC3339))
		fmt.Printf("   Status:   %s\n", r.Status)
		fmt.Printf("   Records:  %d extracted, %d created, %d failed\n", r.Extracted, r.Created, r.Failed)
		if r.ErrorMessage != "" {
			fmt.Printf("   Error:    %s\n", r.ErrorMessage)
		}
	}
	fmt.Println()
}
