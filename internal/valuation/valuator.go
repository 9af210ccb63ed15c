package valuation

import (
	"context"
	"strings"

	"github.com/pmarinho/fintrack/internal/currency"
	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/logger"
)

// RateConverter is the slice of currency.Converter the valuator needs.
type RateConverter interface {
	ConvertToReference(ctx context.Context, amount float64, unitSymbol string) (float64, error)
}

// Valuator normalizes account balances and balance-record snapshots into the
// reference currency.
//
// Only crypto-typed accounts with a non-empty currency are converted; every
// other account is treated as already reference-denominated and its native
// balance passes through unchanged. A USD bank account is therefore reported
// as-is. ConvertAll widens the rule to any non-reference currency for
// deployments that want true multi-currency totals; it is off by default.
type Valuator struct {
	conv       RateConverter
	convertAll bool
}

// NewValuator builds a Valuator. convertAll widens conversion beyond crypto
// accounts to every non-reference currency.
func NewValuator(conv RateConverter, convertAll bool) *Valuator {
	return &Valuator{conv: conv, convertAll: convertAll}
}

// needsConversion decides whether an account's balance must go through the
// cross-rate.
func (v *Valuator) needsConversion(accountType models.AccountType, cur string) bool {
	cur = strings.TrimSpace(cur)
	if cur == "" {
		return false
	}
	if accountType == models.AccountTypeCrypto {
		return true
	}
	return v.convertAll && !strings.EqualFold(cur, currency.Reference)
}

// ValuateAccounts produces a normalized DTO for every account.
//
// Failures are isolated per account: a failed conversion logs a warning and
// falls back to the native balance, so one dead price lookup never fails the
// whole listing. Calling twice with unchanged inputs and ticker responses
// yields identical output; nothing is mutated across calls.
func (v *Valuator) ValuateAccounts(ctx context.Context, accounts []models.Account) []dto.AccountResponse {
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, acct := range accounts {
		resp := accountToResponse(acct)
		resp.EurValue = acct.Balance

		if v.needsConversion(acct.AccountType, acct.Currency) {
			value, err := v.conv.ConvertToReference(ctx, acct.Balance, acct.Currency)
			if err != nil {
				logger.L().Warn().
					Str("account_id", acct.ID).
					Str("currency", acct.Currency).
					Err(err).
					Msg("valuation failed, using native balance")
			} else {
				resp.EurValue = value
			}
		}

		out = append(out, resp)
	}
	return out
}

// TotalNormalizedValue sums the normalized values of already-valuated
// accounts.
func TotalNormalizedValue(accounts []dto.AccountResponse) float64 {
	var total float64
	for _, a := range accounts {
		total += a.EurValue
	}
	return total
}

// ValuateRecords applies the same conversion rule to balance snapshots,
// keyed off each record's owning account. EurValue stays nil when conversion
// does not apply or failed; consumers fall back to the native balance.
func (v *Valuator) ValuateRecords(ctx context.Context, records []models.BalanceRecord) []dto.BalanceRecordResponse {
	out := make([]dto.BalanceRecordResponse, 0, len(records))
	for _, rec := range records {
		resp := dto.BalanceRecordResponse{
			ID:         rec.ID,
			Balance:    rec.Balance,
			RecordedAt: rec.RecordedAt,
		}
		if rec.Account != nil {
			acct := accountToResponse(*rec.Account)
			acct.EurValue = rec.Account.Balance
			resp.Account = &acct

			if v.needsConversion(rec.Account.AccountType, rec.Account.Currency) {
				value, err := v.conv.ConvertToReference(ctx, rec.Balance, rec.Account.Currency)
				if err != nil {
					logger.L().Warn().
						Str("record_id", rec.ID).
						Str("currency", rec.Account.Currency).
						Err(err).
						Msg("record valuation failed, eurValue omitted")
				} else {
					resp.EurValue = &value
				}
			}
		}
		out = append(out, resp)
	}
	return out
}

// ValuateRecord is the single-record variant used when creating a snapshot;
// it returns nil when conversion does not apply, and the error when it does
// apply but failed.
func (v *Valuator) ValuateRecord(ctx context.Context, balance float64, acct models.Account) (*float64, error) {
	if !v.needsConversion(acct.AccountType, acct.Currency) {
		return nil, nil
	}
	value, err := v.conv.ConvertToReference(ctx, balance, acct.Currency)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func accountToResponse(a models.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		Balance:       a.Balance,
		Currency:      a.Currency,
		AccountType:   string(a.AccountType),
		AccountNumber: a.AccountNumber,
		IsActive:      a.IsActive,
		LastUpdated:   a.LastUpdated,
	}
}
