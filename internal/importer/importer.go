// Package importer drives a workbook import: it detects each sheet's type,
// extracts its records, prints a preview and, unless dry-running, writes the
// records one at a time to the record store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dvloznov/condo-os/internal/detect"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/extract"
	"github.com/dvloznov/condo-os/internal/logger"
	"github.com/dvloznov/condo-os/internal/notionsync"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

// ErrSheetNotFound is returned when Options.SheetName names no sheet of
// the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// maxErrorLen caps write error messages printed to the error stream.
const maxErrorLen = 200

// RecordStore creates records in the remote database.
type RecordStore interface {
	CreateRecord(ctx context.Context, collection notionsync.Collection, props notionapi.Properties) (string, error)
}

// Options control one import run.
type Options struct {
	// ForceType skips detection and treats every selected sheet as this type.
	ForceType domain.SheetType
	// SheetName restricts the run to one sheet.
	SheetName string
	DryRun    bool
	// Delay paces remote writes: at most one write per Delay.
	Delay time.Duration
	// MaxVerboseErrors is how many write failures are printed in full.
	MaxVerboseErrors int
	// Lookup resolves parent records for ledger and movement links. Units
	// created during the run are added to it.
	Lookup  *Lookup
	Extract extract.Config
}

// SheetReport is the outcome for one sheet.
type SheetReport struct {
	Name      string
	Type      domain.SheetType
	Extracted int
	Created   int
	Failed    int
	Warnings  []string
}

// Report is the outcome of a run.
type Report struct {
	Sheets    []SheetReport
	Extracted int
	Created   int
	Failed    int
}

// Driver runs imports against a record store.
type Driver struct {
	store  RecordStore
	out    io.Writer
	errOut io.Writer
}

// NewDriver creates a Driver. Previews and summaries go to out, write
// failures to errOut. store may be nil for dry runs.
func NewDriver(store RecordStore, out, errOut io.Writer) *Driver {
	return &Driver{store: store, out: out, errOut: errOut}
}

// Run imports the sheets of src. Unrecognized sheets and rows are skipped.
// Write failures are counted per record and never stop the run; reading
// errors and context cancellation do. Records written before a
// cancellation stay written.
func (d *Driver) Run(ctx context.Context, src sheet.Source, opts Options) (*Report, error) {
	log := logger.FromContext(ctx)

	if !opts.DryRun && d.store == nil {
		return nil, fmt.Errorf("Run: a record store is required unless dry-running")
	}

	names, err := selectSheets(src.SheetNames(), opts.SheetName)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = NewLookup(nil)
	}
	w := &writer{
		store:      d.store,
		errOut:     d.errOut,
		limiter:    newLimiter(opts.Delay),
		maxVerbose: opts.MaxVerboseErrors,
		lookup:     lookup,
	}

	log.Info().
		Int("sheet_count", len(names)).
		Bool("dry_run", opts.DryRun).
		Str("forced_type", string(opts.ForceType)).
		Int("lookup_entries", lookup.Len()).
		Msg("Starting import")

	report := &Report{}
	for _, name := range names {
		rows, err := src.Rows(name)
		if err != nil {
			return report, fmt.Errorf("Run: reading sheet %q: %w", name, err)
		}

		kind := detect.Resolve(name, rows, opts.ForceType)
		sheetLog := logger.WithFields(log, map[string]interface{}{
			"sheet": name,
			"type":  string(kind),
		})

		if kind == domain.SheetUnrecognized {
			sheetLog.Info().Int("rows", len(rows)).Msg("Skipping unrecognized sheet")
			fmt.Fprintf(d.out, "\n=== Sheet %q: type not recognized, skipped ===\n", name)
			report.Sheets = append(report.Sheets, SheetReport{Name: name, Type: kind})
			continue
		}

		res := extract.Extract(kind, rows, opts.Extract)
		writePreview(d.out, name, res)
		for _, warning := range res.Warnings {
			sheetLog.Warn().Msg(warning)
		}

		sr := SheetReport{Name: name, Type: kind, Extracted: res.Count(), Warnings: res.Warnings}
		report.Extracted += sr.Extracted

		if opts.DryRun {
			sheetLog.Info().
				Int("records", sr.Extracted).
				Str("collection", string(collectionFor(kind))).
				Msg("[DRY RUN] Would create Notion pages")
			report.Sheets = append(report.Sheets, sr)
			continue
		}

		created, failed, err := w.write(logger.WithContext(ctx, sheetLog), buildRecords(res, lookup))
		sr.Created, sr.Failed = created, failed
		report.Created += created
		report.Failed += failed
		report.Sheets = append(report.Sheets, sr)
		if err != nil {
			return report, fmt.Errorf("Run: %w", err)
		}

		sheetLog.Info().
			Int("created", created).
			Int("failed", failed).
			Msg("Sheet import completed")
	}

	w.reportSuppressed()
	writeSummary(d.out, report, opts.DryRun)
	return report, nil
}

// selectSheets returns all sheet names, or only the requested one.
func selectSheets(names []string, only string) ([]string, error) {
	if only == "" {
		return names, nil
	}
	for _, n := range names {
		if n == only {
			return []string{n}, nil
		}
	}
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(only)) {
			return []string{n}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, only, strings.Join(names, ", "))
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// writer performs the paced, sequential remote writes of a run.
type writer struct {
	store      RecordStore
	errOut     io.Writer
	limiter    *rate.Limiter
	maxVerbose int
	lookup     *Lookup
	// errorsShown counts failures across the whole run, printed or not.
	errorsShown int
}

// write creates records in order. A failed record is reported and skipped;
// only a cancelled context ends the batch early.
func (w *writer) write(ctx context.Context, records []record) (created, failed int, err error) {
	log := logger.FromContext(ctx)

	for _, rec := range records {
		if err := w.limiter.Wait(ctx); err != nil {
			return created, failed, fmt.Errorf("write: waiting to create %s record: %w", rec.collection, err)
		}

		pageID, err := w.store.CreateRecord(ctx, rec.collection, rec.props)
		if err != nil {
			failed++
			log.Warn().
				Err(err).
				Str("collection", string(rec.collection)).
				Str("record", rec.label).
				Msg("Failed to create Notion page")
			if w.errorsShown < w.maxVerbose {
				fmt.Fprintf(w.errOut, "  ✗ %s %q: %s\n", rec.collection, rec.label, truncate(err.Error(), maxErrorLen))
			}
			w.errorsShown++
			continue
		}

		created++
		if rec.parentKey != "" {
			w.lookup.Add(rec.parentKey, pageID)
		}
		log.Debug().
			Str("collection", string(rec.collection)).
			Str("record", rec.label).
			Str("page_id", pageID).
			Msg("Created Notion page")
	}

	return created, failed, nil
}

// reportSuppressed notes the failures that were not printed in full.
func (w *writer) reportSuppressed() {
	if hidden := w.errorsShown - w.maxVerbose; hidden > 0 {
		fmt.Fprintf(w.errOut, "  ... and %d more errors\n", hidden)
	}
}

func writeSummary(w io.Writer, r *Report, dryRun bool) {
	fmt.Fprintln(w)
	if dryRun {
		fmt.Fprintf(w, "[DRY RUN] %d records extracted from %d sheets; nothing was written.\n", r.Extracted, len(r.Sheets))
		return
	}
	fmt.Fprintf(w, "Import complete: %d extracted, %d created, %d failed.\n", r.Extracted, r.Created, r.Failed)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}
