package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmarinho/fintrack/internal/logger"
	"github.com/pmarinho/fintrack/internal/storage"
)

const (
	fileExt          = ".csv"
	defaultBatchSize = 1000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.TransactionsRepository {
	return storage.NewTransactionsRepository(db)
}

// ImportDirectory imports every bank-statement .csv file found in dir.
//
// Behavior:
//   - Each file is one exported statement; files are processed concurrently
//     with a worker cap (min(8, NumCPU) by default, or the provided clamp).
//   - A file already present in the import log is skipped unless force is
//     set; the transactions table's uniqueness constraint dedupes rows on
//     forced re-imports.
//   - If any file fails, siblings are cancelled and the first error is
//     returned.
func ImportDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)
	log := logger.Component("importer")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", fileExt, dir)
	}

	log.Info().Int("files", len(files)).Str("dir", dir).Msg("import start")

	// Concurrency: default to min(8, NumCPU), or use provided clamp(1..8)
	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel > maxParallelFiles {
			parallel = maxParallelFiles
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	log.Info().Int("max_parallel", maxParallel).Msg("import configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, file := range files {
		idx := i
		f := file

		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(f)
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			// Idempotency: skip if already imported, unless force
			exists, err := repo.HasImportForFile(base)
			if err != nil {
				log.Error().Str("file", base).Err(err).Msg("check import log failed")
				return fmt.Errorf("file %s: check import log: %w", f, err)
			}
			if exists && !force {
				log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Bool("skipped", true).Msg("already imported")
				return nil
			}

			total, err := parseAndPersistFile(gctx, f, repo, defaultBatchSize)
			if err != nil {
				log.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}
			if err := repo.UpsertImportLog(base, total); err != nil {
				log.Error().Str("file", base).Err(err).Msg("update import log failed")
				return fmt.Errorf("file %s: upsert import log: %w", f, err)
			}
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}
