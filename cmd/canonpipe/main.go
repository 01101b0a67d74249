// Command canonpipe is the batch driver: it reads a recipe ingredient-line
// NDJSON stream, runs each row through C1 intake and the C2...C9 mainline,
// and writes three output streams — canonical records, an error/warning
// log, and a human-readable report (§6).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"canonpipe/internal/clock"
	"canonpipe/internal/config"
	"canonpipe/internal/pipeline"
	"canonpipe/internal/pipeline/mainline"
	"canonpipe/internal/refdata"
	"canonpipe/internal/report"
	"canonpipe/internal/safeio"
	t "canonpipe/internal/types"
	"canonpipe/internal/util/jsonutil"
)

const jaccardCacheSize = 4096

func main() {
	upgrade := flag.Bool("upgrade", false, "carry forward rows that succeeded in --output's prior run instead of reprocessing them; rows that failed there are reprocessed")

	// config.Load registers its own flags (--input, --output, --concurrency)
	// and parses the whole flag.CommandLine once every flag is registered.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.InputPath == "" {
		log.Fatal("canonpipe: --input (or CANON_INPUT_PATH) is required")
	}
	if cfg.OutputPath == "" {
		log.Fatal("canonpipe: --output (or CANON_OUTPUT_PATH) is required")
	}

	ctx := context.Background()
	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("canonpipe: reference snapshot loaded (%s)", sourceLabel(cfg))

	rootFS, err := safeio.NewSafeFS(".")
	if err != nil {
		log.Fatal(err)
	}

	rows, err := readInput(rootFS, cfg.InputPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("canonpipe: read %d input rows from %s", len(rows), cfg.InputPath)

	var carried map[string]t.CanonicalRecord
	if *upgrade {
		carried, err = readCarryForward(rootFS, cfg.OutputPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("canonpipe: upgrade mode, %d prior records eligible for carry-forward", len(carried))
	}

	mlCfg := mainline.Config{
		LinkThresholds: pipeline.LinkThresholds{Accept: cfg.Fuzzy.Accept, Review: cfg.Fuzzy.Review},
		DensityBand:    pipeline.DensityBand{Min: cfg.Density.BandMin, Max: cfg.Density.BandMax},
		Today:          clock.Today(),
	}

	records, err := processRows(ctx, rows, snap, mlCfg, carried, cfg.Concurrency)
	if err != nil {
		log.Fatal(err)
	}

	flagSequenceGaps(records)

	if err := writeRecords(rootFS, cfg.OutputPath, records); err != nil {
		log.Fatal(err)
	}
	if cfg.ErrorPath != "" {
		if err := writeErrorStream(rootFS, cfg.ErrorPath, records); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.ReportPath != "" {
		if err := writeReport(rootFS, cfg.ReportPath, records); err != nil {
			log.Fatal(err)
		}
	}

	summary := report.Build(records)
	log.Printf("canonpipe: rows=%d succeeded=%d failed=%d", summary.TotalRows, summary.Succeeded, summary.Failed)
}

func sourceLabel(cfg *config.Config) string {
	if cfg.RefData.PGDSN != "" {
		return "postgres"
	}
	return cfg.RefData.Dir
}

func loadSnapshot(ctx context.Context, cfg *config.Config) (*refdata.Snapshot, error) {
	if cfg.RefData.S3.CanUseS3() {
		dir := cfg.RefData.Dir
		if dir == "" {
			dir = "refdata-cache"
		}
		if err := refdata.PullSnapshot(ctx, cfg.RefData.S3, dir); err != nil {
			return nil, err
		}
		cfg.RefData.Dir = dir
	}
	raw, err := refdata.Load(refdata.Source{Dir: cfg.RefData.Dir, PGDSN: cfg.RefData.PGDSN})
	if err != nil {
		return nil, err
	}
	return refdata.NewSnapshot(raw, jaccardCacheSize), nil
}

// readInput decodes one InputRow per NDJSON line, tolerating blank lines.
func readInput(fs *safeio.SafeFS, path string) ([]t.InputRow, error) {
	f, err := fs.SafeOpen(path)
	if err != nil {
		return nil, fmt.Errorf("canonpipe: open input: %w", err)
	}
	defer f.Close()

	var rows []t.InputRow
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bufTrimSpace(line)) == 0 {
			continue
		}
		var row t.InputRow
		if err := jsonutil.UnmarshalFlex(line, &row); err != nil {
			return nil, fmt.Errorf("canonpipe: decode input row: %w", err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("canonpipe: scan input: %w", err)
	}
	return rows, nil
}

func bufTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpaceByte(b[start]) {
		start++
	}
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// readCarryForward reads a prior run's output stream and indexes its
// successful records by idempotency key, so --upgrade skips reprocessing
// them while rows that failed before are run through the pipeline again.
func readCarryForward(fs *safeio.SafeFS, path string) (map[string]t.CanonicalRecord, error) {
	f, err := fs.SafeOpen(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("canonpipe: open prior output: %w", err)
	}
	defer f.Close()

	out := make(map[string]t.CanonicalRecord)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bufTrimSpace(line)) == 0 {
			continue
		}
		var rec t.CanonicalRecord
		if err := jsonutil.UnmarshalFlex(line, &rec); err != nil {
			return nil, fmt.Errorf("canonpipe: decode prior record: %w", err)
		}
		if rec.IdempotencyKey != "" && rec.FailureCode == "" {
			out[rec.IdempotencyKey] = rec
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("canonpipe: scan prior output: %w", err)
	}
	return out, nil
}

// processRows fans rows out across a bounded worker pool. Each row is
// C1-accepted (or rejected) and, once accepted, run through the C2...C9
// mainline independently of every other row (§5 "pure per-row"), so the
// pool shares nothing but the read-only snapshot.
func processRows(ctx context.Context, rows []t.InputRow, snap *refdata.Snapshot, mlCfg mainline.Config, carried map[string]t.CanonicalRecord, concurrency int) ([]t.CanonicalRecord, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	out := make([]t.CanonicalRecord, len(rows))
	present := make([]bool, len(rows))

	var seenMu sync.Mutex
	seen := make(map[string]bool)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, concurrency)

	for i, row := range rows {
		i, row := i, row
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
		}
		g.Go(func() error {
			defer func() { <-sem }()

			seenMu.Lock()
			intake := pipeline.Intake(row, seen)
			if intake.Accepted {
				seen[intake.Record.IdempotencyKey] = true
			}
			seenMu.Unlock()

			if !intake.Accepted {
				if intake.Reject != "" {
					rec := t.CanonicalRecord{RecipeID: row.RecipeID, LineNumber: row.IngredientLineNo, OriginalText: row.OriginalText}
					rec.Fail(intake.Reject)
					out[i] = rec
					present[i] = true
				}
				return nil
			}

			if prior, ok := carried[intake.Record.IdempotencyKey]; ok {
				out[i] = prior
				present[i] = true
				return nil
			}

			out[i] = mainline.Run(intake.Record, row, snap, mlCfg)
			present[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]t.CanonicalRecord, 0, len(rows))
	for i, ok := range present {
		if ok {
			records = append(records, out[i])
		}
	}
	return records, nil
}

// flagSequenceGaps applies the §4.1 non-blocking SEQUENCE_GAP warning per
// recipe, after all of a recipe's rows are known.
func flagSequenceGaps(records []t.CanonicalRecord) {
	byRecipe := make(map[string][]int)
	for _, rec := range records {
		byRecipe[rec.RecipeID] = append(byRecipe[rec.RecipeID], rec.LineNumber)
	}
	gappy := make(map[string]bool, len(byRecipe))
	for recipeID, lines := range byRecipe {
		gappy[recipeID] = pipeline.SequenceGaps(lines)
	}
	for i := range records {
		if gappy[records[i].RecipeID] {
			records[i].AddWarning(t.CodeSequenceGap)
		}
	}
}

func writeRecords(fs *safeio.SafeFS, path string, records []t.CanonicalRecord) error {
	f, err := fs.SafeCreate(path)
	if err != nil {
		return fmt.Errorf("canonpipe: create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		b, err := jsonutil.MarshalNoEscape(rec)
		if err != nil {
			return fmt.Errorf("canonpipe: encode record: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// writeErrorStream emits one line per record carrying a failure code or
// warning, sorted by recipe then line number for a stable diff-friendly log.
func writeErrorStream(fs *safeio.SafeFS, path string, records []t.CanonicalRecord) error {
	flagged := make([]t.CanonicalRecord, 0)
	for _, rec := range records {
		if rec.FailureCode != "" || len(rec.Warnings) > 0 {
			flagged = append(flagged, rec)
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].RecipeID != flagged[j].RecipeID {
			return flagged[i].RecipeID < flagged[j].RecipeID
		}
		return flagged[i].LineNumber < flagged[j].LineNumber
	})

	f, err := fs.SafeCreate(path)
	if err != nil {
		return fmt.Errorf("canonpipe: create error stream: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range flagged {
		entry := struct {
			RecipeID     string  `json:"recipe_id"`
			LineNumber   int     `json:"ingredient_line_number"`
			OriginalText string  `json:"ingredient_original_text"`
			FailureCode  t.Code  `json:"failure_code,omitempty"`
			Warnings     []t.Code `json:"warnings,omitempty"`
		}{rec.RecipeID, rec.LineNumber, rec.OriginalText, rec.FailureCode, rec.Warnings}
		b, err := jsonutil.MarshalNoEscape(entry)
		if err != nil {
			return fmt.Errorf("canonpipe: encode error entry: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeReport(fs *safeio.SafeFS, path string, records []t.CanonicalRecord) error {
	f, err := fs.SafeCreate(path)
	if err != nil {
		return fmt.Errorf("canonpipe: create report: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := report.WriteHuman(w, report.Build(records)); err != nil {
		return err
	}
	return w.Flush()
}
