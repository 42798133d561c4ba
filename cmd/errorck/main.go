// Command errorck batch-classifies how every call to a watched function in
// a C/C++ codebase has its error signal handled, and persists one record per
// call site to a SQLite sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/golang/glog"

	"github.com/errorck/errorck/internal/compdb"
	"github.com/errorck/errorck/internal/config"
	"github.com/errorck/errorck/internal/sink"
)

func main() {
	var (
		notableFunctions = flag.String("notable-functions", "", "path to the notable-functions registry JSON file (required)")
		dbPath           = flag.String("db", "", "path to the SQLite sink database to create (required)")
		compDBDir        = flag.String("compdb", "", "directory containing compile_commands.json (required)")
		overwrite        = flag.Bool("overwrite-if-needed", false, "remove an existing sink database at -db before writing")
		workers          = flag.Int("workers", runtime.NumCPU(), "number of translation units to analyze concurrently")
	)
	flag.Parse()

	err := run(*notableFunctions, *dbPath, *compDBDir, *overwrite, *workers)
	if err != nil {
		glog.Errorf("errorck: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func run(notableFunctions, dbPath, compDBDir string, overwrite bool, workers int) error {
	if notableFunctions == "" || dbPath == "" || compDBDir == "" {
		return fmt.Errorf("-notable-functions, -db, and -compdb are all required")
	}
	if workers < 1 {
		workers = 1
	}

	reg, err := config.Load(notableFunctions)
	if err != nil {
		return fmt.Errorf("load notable-functions registry: %w", err)
	}

	entries, err := compdb.Load(compDBDir)
	if err != nil {
		return fmt.Errorf("load compilation database: %w", err)
	}
	glog.Infof("errorck: analyzing %d translation unit(s) with %d worker(s)", len(entries), workers)

	w, err := sink.Open(dbPath, overwrite)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			glog.Warningf("errorck: closing sink: %v", cerr)
		}
	}()

	ctx := context.Background()
	results, stats := runBatch(ctx, entries, reg, workers, os.ReadFile)

	var total int
	for res := range results {
		if res.err != nil {
			// The translation unit is skipped; analysis of its siblings
			// continues, per the batch driver's per-TU fault isolation. The
			// failure still fails the run overall, via stats.failed below.
			continue
		}
		if err := w.WriteAll(res.records); err != nil {
			return fmt.Errorf("write records for %s: %w", res.file, err)
		}
		total += len(res.records)
	}

	glog.Infof("errorck: analyzed %d translation unit(s) (%d failed), emitted %d record(s)",
		stats.submitted, stats.failed, total)
	if stats.failed > 0 {
		return fmt.Errorf("%d translation unit(s) failed to analyze", stats.failed)
	}
	return nil
}
