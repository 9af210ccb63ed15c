package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
)

// expectedHeaders enforces strict column ordering for statement exports.
// If the header doesn't match EXACTLY (order + count), the import must fail.
var expectedHeaders = []string{
	"date",
	"description",
	"amount",
	"currency",
	"sender",
	"receiver",
}

const dateLayout = "2006-01-02"

// parseAndPersistFile opens, validates, parses, and persists one statement
// file in batches. It returns the number of rows actually inserted
// (duplicates absorbed by the uniqueness constraint are not counted).
//
// It fails on:
//   - header not matching expected order/length
//   - malformed dates or amounts
//   - unrecoverable I/O errors
func parseAndPersistFile(ctx context.Context, path string, repo storage.TransactionsRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // allow variable but we'll check explicitly

	// Validate headers strictly.
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), expectedHeaders[i]) {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	// Parse rows streaming; flush batches to DB.
	buf := make([]models.BankTransaction, 0, batch)
	lineNumber := 1 // header already read

	total := 0

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		n, err := repo.InsertBatch(buf)
		if err != nil {
			return err
		}
		total += n
		buf = buf[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		tx, err := recordToTransaction(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, tx)
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	// Final flush
	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToTransaction converts one CSV record (already validated length==6)
// into a models.BankTransaction. Dates use YYYY-MM-DD; amounts accept a
// comma decimal separator; currency defaults to EUR when empty.
func recordToTransaction(rec []string) (models.BankTransaction, error) {
	var t models.BankTransaction

	d, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return t, fmt.Errorf("invalid date: %v", err)
	}
	t.Date = d

	t.Description = strings.TrimSpace(rec[1])
	if t.Description == "" {
		return t, fmt.Errorf("empty description")
	}

	amount := strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", ".")
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return t, fmt.Errorf("invalid amount: %v", err)
	}
	t.Amount = v

	t.Currency = strings.ToUpper(strings.TrimSpace(rec[3]))
	if t.Currency == "" {
		t.Currency = "EUR"
	}

	t.Sender = strings.TrimSpace(rec[4])
	t.Receiver = strings.TrimSpace(rec[5])

	return t, nil
}
