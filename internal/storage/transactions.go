package storage

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

// TransactionsRepository defines the contract for imported statement rows
// and the import idempotency log.
type TransactionsRepository interface {
	InsertBatch(txs []models.BankTransaction) (int, error)
	GetAll() ([]models.BankTransaction, error)
	HasImportForFile(filename string) (bool, error)
	UpsertImportLog(filename string, rowCount int) error
}

type transactionsRepository struct {
	db *sql.DB
}

func NewTransactionsRepository(db *sql.DB) TransactionsRepository {
	return &transactionsRepository{db: db}
}

// InsertBatch inserts statement rows in a single transaction. The table's
// uniqueness constraint on (date, sender, receiver, description, amount,
// currency) absorbs re-imports: duplicate rows are skipped, and the returned
// count covers only the rows actually inserted.
func (r *transactionsRepository) InsertBatch(txs []models.BankTransaction) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bank_transactions (date, description, amount, currency, sender, receiver)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	inserted := 0
	for _, rec := range txs {
		res, err := stmt.Exec(
			rec.Date,
			rec.Description,
			decimal.NewFromFloat(rec.Amount).Round(2).StringFixed(2),
			rec.Currency,
			rec.Sender,
			rec.Receiver,
		)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	return inserted, tx.Commit()
}

// GetAll returns every imported transaction, newest first.
func (r *transactionsRepository) GetAll() ([]models.BankTransaction, error) {
	rows, err := r.db.Query(`
		SELECT id, date, description, amount, currency, sender, receiver, tag_id, account_id
		FROM bank_transactions
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []models.BankTransaction
	for rows.Next() {
		var (
			t         models.BankTransaction
			amount    string
			tagID     sql.NullInt64
			accountID sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &amount, &t.Currency, &t.Sender, &t.Receiver, &tagID, &accountID); err != nil {
			return nil, err
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		t.Amount = dec.InexactFloat64()
		if tagID.Valid {
			t.TagID = &tagID.Int64
		}
		if accountID.Valid {
			t.AccountID = &accountID.String
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// HasImportForFile checks whether a statement file was already imported.
func (r *transactionsRepository) HasImportForFile(filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM import_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertImportLog records (or updates) the import entry for a statement file.
func (r *transactionsRepository) UpsertImportLog(filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO import_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  imported_at = NOW()
	`, filename, rowCount)
	return err
}
