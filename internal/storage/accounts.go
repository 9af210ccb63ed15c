package storage

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

// ErrNotFound is returned when a referenced row does not exist. Handlers map
// it to 404 unchanged.
var ErrNotFound = errors.New("not found")

// AccountsRepository defines the contract for account persistence.
type AccountsRepository interface {
	Insert(a *models.Account) error
	GetAll() ([]models.Account, error)
	GetByID(id string) (*models.Account, error)
	Update(a *models.Account) error
	Delete(id string) error
}

type accountsRepository struct {
	db *sql.DB
}

func NewAccountsRepository(db *sql.DB) AccountsRepository {
	return &accountsRepository{db: db}
}

const accountColumns = `id, name, description, balance, currency, account_type, account_number, is_active, last_updated`

// Insert stores a new account. The caller assigns the id.
func (r *accountsRepository) Insert(a *models.Account) error {
	_, err := r.db.Exec(`
		INSERT INTO accounts (id, name, description, balance, currency, account_type, account_number, is_active, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		a.ID,
		a.Name,
		nullString(a.Description),
		moneyParam(a.Balance),
		a.Currency,
		string(a.AccountType),
		nullString(a.AccountNumber),
		a.IsActive,
		a.LastUpdated,
	)
	return err
}

// GetAll returns every account, oldest first for stable listing order.
func (r *accountsRepository) GetAll() ([]models.Account, error) {
	rows, err := r.db.Query(`SELECT ` + accountColumns + ` FROM accounts ORDER BY last_updated, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetByID returns one account or ErrNotFound.
func (r *accountsRepository) GetByID(id string) (*models.Account, error) {
	row := r.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update persists the full account row; ErrNotFound when the id is unknown.
func (r *accountsRepository) Update(a *models.Account) error {
	res, err := r.db.Exec(`
		UPDATE accounts
		SET name = $2, description = $3, balance = $4, currency = $5,
			account_type = $6, account_number = $7, is_active = $8, last_updated = $9
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		nullString(a.Description),
		moneyParam(a.Balance),
		a.Currency,
		string(a.AccountType),
		nullString(a.AccountNumber),
		a.IsActive,
		a.LastUpdated,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an account; ErrNotFound when the id is unknown.
func (r *accountsRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one account row. The balance NUMERIC column arrives as
// text from the driver and goes through decimal to keep its two-decimal
// semantics intact before landing in a float64.
func scanAccount(s rowScanner) (models.Account, error) {
	var (
		a           models.Account
		description sql.NullString
		number      sql.NullString
		balance     string
		acctType    string
		lastUpdated sql.NullTime
	)

	if err := s.Scan(&a.ID, &a.Name, &description, &balance, &a.Currency, &acctType, &number, &a.IsActive, &lastUpdated); err != nil {
		return models.Account{}, err
	}

	dec, err := decimal.NewFromString(balance)
	if err != nil {
		return models.Account{}, err
	}
	a.Balance = dec.InexactFloat64()
	a.Description = description.String
	a.AccountNumber = number.String
	a.AccountType = models.AccountType(acctType)
	if lastUpdated.Valid {
		a.LastUpdated = lastUpdated.Time
	}
	return a, nil
}

// moneyParam renders a float64 as a two-decimal string for NUMERIC columns.
func moneyParam(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
