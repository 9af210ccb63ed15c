package storage

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

// BalanceRecordsRepository defines the contract for balance-snapshot
// persistence.
type BalanceRecordsRepository interface {
	// Insert stores a new record and, in the same transaction, refreshes the
	// owning account's cached balance and last_updated. This keeps the
	// invariant that an account's balance equals its most recent record.
	Insert(rec *models.BalanceRecord) error
	GetAll() ([]models.BalanceRecord, error)
	GetByAccountID(accountID string) ([]models.BalanceRecord, error)
	GetByID(id string) (*models.BalanceRecord, error)
	Delete(id string) error
}

type balanceRecordsRepository struct {
	db *sql.DB
}

func NewBalanceRecordsRepository(db *sql.DB) BalanceRecordsRepository {
	return &balanceRecordsRepository{db: db}
}

// Insert runs the two-step write: insert the snapshot, then overwrite the
// account's denormalized balance/last_updated with the snapshot's values.
// Both land or neither does.
func (r *balanceRecordsRepository) Insert(rec *models.BalanceRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	var eurValue any
	if rec.EurValue != nil {
		eurValue = moneyParam(*rec.EurValue)
	}

	if _, err := tx.Exec(`
		INSERT INTO balance_record (id, account_id, balance, eur_value, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.AccountID, moneyParam(rec.Balance), eurValue, rec.RecordedAt); err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.Exec(`
		UPDATE accounts SET balance = $2, last_updated = $3 WHERE id = $1
	`, rec.AccountID, moneyParam(rec.Balance), rec.RecordedAt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		_ = tx.Rollback()
		if err != nil {
			return err
		}
		return ErrNotFound
	}

	return tx.Commit()
}

const recordColumns = `
	r.id, r.account_id, r.balance, r.eur_value, r.recorded_at,
	a.id, a.name, a.description, a.balance, a.currency, a.account_type, a.account_number, a.is_active, a.last_updated`

// GetAll returns every record joined with its owning account, ordered
// chronologically with the insert sequence breaking timestamp ties.
func (r *balanceRecordsRepository) GetAll() ([]models.BalanceRecord, error) {
	rows, err := r.db.Query(`
		SELECT ` + recordColumns + `
		FROM balance_record r
		JOIN accounts a ON a.id = r.account_id
		ORDER BY r.recorded_at, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectRecords(rows)
}

// GetByAccountID returns one account's records, newest first.
func (r *balanceRecordsRepository) GetByAccountID(accountID string) ([]models.BalanceRecord, error) {
	rows, err := r.db.Query(`
		SELECT `+recordColumns+`
		FROM balance_record r
		JOIN accounts a ON a.id = r.account_id
		WHERE r.account_id = $1
		ORDER BY r.recorded_at DESC, r.id DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectRecords(rows)
}

// GetByID returns one record or ErrNotFound.
func (r *balanceRecordsRepository) GetByID(id string) (*models.BalanceRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM balance_record r
		JOIN accounts a ON a.id = r.account_id
		WHERE r.id = $1
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record; ErrNotFound when the id is unknown. The account's
// cached balance is deliberately left alone: deleting history does not
// rewind the denormalized current state.
func (r *balanceRecordsRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM balance_record WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func collectRecords(rows *sql.Rows) ([]models.BalanceRecord, error) {
	var records []models.BalanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(s rowScanner) (models.BalanceRecord, error) {
	var (
		rec         models.BalanceRecord
		acct        models.Account
		balance     string
		eurValue    sql.NullString
		description sql.NullString
		number      sql.NullString
		acctBalance string
		acctType    string
		lastUpdated sql.NullTime
	)

	err := s.Scan(
		&rec.ID, &rec.AccountID, &balance, &eurValue, &rec.RecordedAt,
		&acct.ID, &acct.Name, &description, &acctBalance, &acct.Currency,
		&acctType, &number, &acct.IsActive, &lastUpdated,
	)
	if err != nil {
		return models.BalanceRecord{}, err
	}

	dec, err := decimal.NewFromString(balance)
	if err != nil {
		return models.BalanceRecord{}, err
	}
	rec.Balance = dec.InexactFloat64()

	if eurValue.Valid {
		v, err := decimal.NewFromString(eurValue.String)
		if err != nil {
			return models.BalanceRecord{}, err
		}
		f := v.InexactFloat64()
		rec.EurValue = &f
	}

	acctDec, err := decimal.NewFromString(acctBalance)
	if err != nil {
		return models.BalanceRecord{}, err
	}
	acct.Balance = acctDec.InexactFloat64()
	acct.Description = description.String
	acct.AccountNumber = number.String
	acct.AccountType = models.AccountType(acctType)
	if lastUpdated.Valid {
		acct.LastUpdated = lastUpdated.Time
	}

	rec.Account = &acct
	return rec, nil
}
