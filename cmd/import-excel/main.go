package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/condo-os/internal/config"
	"github.com/dvloznov/condo-os/internal/detect"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/gcs"
	"github.com/dvloznov/condo-os/internal/importer"
	"github.com/dvloznov/condo-os/internal/logger"
	"github.com/dvloznov/condo-os/internal/notionsync"
	"github.com/dvloznov/condo-os/internal/runlog"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/rs/zerolog"
)

type options struct {
	location  string
	sheetType domain.SheetType
	sheetName string
	dryRun    bool
	link      bool
	delay     time.Duration
	envFile   string
}

func main() {
	typeFlag := flag.String("type", "", "Force sheet type: units|ledger|expenses|movements|budget (skips detection)")
	sheetName := flag.String("sheet", "", "Import only the named sheet")
	dryRun := flag.Bool("dry-run", false, "Preview extracted records without writing to Notion")
	link := flag.Bool("link", false, "Load existing units and accounts from Notion to link ledger and movement entries")
	delay := flag.Duration("delay", -1, "Pause between Notion writes (default from IMPORT_REQUEST_DELAY_MS)")
	envFile := flag.String("env", "", "Additional .env file to load")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	sheetType, err := detect.ParseSheetType(*typeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		location:  flag.Arg(0),
		sheetType: sheetType,
		sheetName: *sheetName,
		dryRun:    *dryRun,
		link:      *link,
		delay:     *delay,
		envFile:   *envFile,
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Import a condominium workbook into Notion")
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  import-excel [flags] <file.xlsx | gs://bucket/object.xlsx>")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nConfiguration is read from the environment and .env (NOTION_TOKEN, NOTION_*_DB_ID, ...).")
}

func run(opts options) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(!opts.dryRun); err != nil {
		return err
	}
	if opts.link && cfg.Notion.Token == "" {
		return fmt.Errorf("--link needs NOTION_TOKEN")
	}

	// stdout carries the preview and summary only.
	log := logger.NewWithLevel(cfg.LogLevel, os.Stderr)

	// An interrupt stops further writes; records already written stay.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("workbook", gcs.DisplayName(opts.location)).
		Bool("dry_run", opts.dryRun).
		Msg("Opening workbook")

	src, err := openWorkbook(ctx, cfg, opts.location)
	if err != nil {
		return err
	}
	defer src.Close()

	importOpts := importer.Options{
		ForceType:        opts.sheetType,
		SheetName:        opts.sheetName,
		DryRun:           opts.dryRun,
		Delay:            cfg.Import.RequestDelay,
		MaxVerboseErrors: cfg.Import.MaxVerboseErrors,
		Extract:          cfg.Import.Extract(),
	}
	if opts.delay >= 0 {
		importOpts.Delay = opts.delay
	}

	var notionClient *notionsync.NotionClient
	if cfg.Notion.Token != "" {
		notionClient = notionsync.NewNotionClient(cfg.Notion.Token)
	}

	if opts.link {
		lookup, err := loadLookup(ctx, notionClient, cfg.Notion)
		if err != nil {
			return err
		}
		importOpts.Lookup = lookup
	}

	var driver *importer.Driver
	if opts.dryRun {
		driver = importer.NewDriver(nil, os.Stdout, os.Stderr)
	} else {
		driver = importer.NewDriver(notionsync.NewStore(notionClient, cfg.Notion.Databases()), os.Stdout, os.Stderr)
	}

	recorder, closeRecorder := newRecorder(ctx, cfg, opts.dryRun, log)
	defer closeRecorder()

	runID, err := recorder.Start(ctx, opts.location)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to record import start")
	}

	report, runErr := driver.Run(ctx, src, importOpts)

	if runID != "" {
		var counts runlog.Counts
		if report != nil {
			counts = runlog.Counts{Extracted: report.Extracted, Created: report.Created, Failed: report.Failed}
		}
		// The run context may already be cancelled.
		finishCtx, cancel := context.WithTimeout(logger.WithContext(context.Background(), log), 30*time.Second)
		defer cancel()
		if err := recorder.Finish(finishCtx, runID, counts, runErr); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("Failed to record import result")
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("import interrupted: %w", runErr)
		}
		return runErr
	}
	return nil
}

func openWorkbook(ctx context.Context, cfg *config.Config, location string) (sheet.Source, error) {
	if !gcs.IsURI(location) {
		return sheet.OpenFile(location)
	}

	client, err := gcs.NewClient(ctx, cfg.GCP.ClientOptions()...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	log := logger.FromContext(ctx)
	log.Info().
		Str("uri", location).
		Str("workbook", gcs.DisplayName(location)).
		Msg("Downloading workbook from GCS")

	return sheet.Open(ctx, location, client)
}

// loadLookup reads existing unit and account pages so new ledger and
// movement records can reference them.
func loadLookup(ctx context.Context, client notionsync.NotionService, n config.NotionConfig) (*importer.Lookup, error) {
	lookup := importer.NewLookup(nil)
	for _, dbID := range []string{n.UnitsDB, n.AccountsDB} {
		if dbID == "" {
			continue
		}
		pages, err := notionsync.LoadParentLookup(ctx, client, dbID)
		if err != nil {
			return nil, err
		}
		for title, pageID := range pages {
			lookup.Add(title, pageID)
		}
	}
	return lookup, nil
}

// newRecorder returns the BigQuery run log when a project is configured.
// Dry runs are never recorded.
func newRecorder(ctx context.Context, cfg *config.Config, dryRun bool, log zerolog.Logger) (runlog.Recorder, func()) {
	if dryRun || cfg.GCP.ProjectID == "" {
		return runlog.Nop{}, func() {}
	}

	rec, err := runlog.NewBigQueryRecorder(ctx, cfg.GCP.ProjectID, cfg.GCP.Dataset, cfg.GCP.ClientOptions()...)
	if err != nil {
		log.Warn().Err(err).Msg("Import run log disabled")
		return runlog.Nop{}, func() {}
	}
	if err := rec.EnsureTable(ctx); err != nil {
		log.Warn().Err(err).Msg("Import run log disabled")
		rec.Close()
		return runlog.Nop{}, func() {}
	}
	return rec, func() { rec.Close() }
}
