package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmarinho/fintrack/internal/logger"
	"github.com/pmarinho/fintrack/internal/ticker"
)

// Reference is the currency all normalized values are expressed in.
const Reference = "EUR"

// quoteAsset is the intermediate unit every exchange rate is triangulated
// through: the ticker only quotes USDT pairs, so EUR conversion goes
// unit -> USDT -> EUR.
const quoteAsset = "USDT"

// referencePair is the trading pair giving the USDT-per-EUR rate.
const referencePair = Reference + quoteAsset

// ConversionError wraps a failed conversion, identifying which leg of the
// triangulation broke (the unit pair or the reference pair).
type ConversionError struct {
	Symbol string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert via %s: %v", e.Symbol, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Converter turns amounts in a non-reference unit into the reference
// currency using two ticker lookups per conversion.
type Converter struct {
	ticker ticker.Client
	cache  RateCache
}

// NewConverter builds a Converter. A nil cache disables caching entirely,
// matching the one-shot fetch behavior of the ticker itself.
func NewConverter(tc ticker.Client, cache RateCache) *Converter {
	if cache == nil {
		cache = NopCache{}
	}
	return &Converter{ticker: tc, cache: cache}
}

// ConvertToReference converts amount denominated in unitSymbol (e.g. "BTC")
// into the reference currency.
//
// Algorithm: fetch p1 for <UNIT>USDT (USDT per unit) and p2 for EURUSDT
// (USDT per EUR); the EUR-per-unit rate is p1 * (1/p2) and the result is
// amount * rate. Plain float64 arithmetic throughout; rounding to display
// precision is the caller's concern.
func (c *Converter) ConvertToReference(ctx context.Context, amount float64, unitSymbol string) (float64, error) {
	pair := strings.ToUpper(strings.TrimSpace(unitSymbol)) + quoteAsset

	unitPrice, err := c.fetchRate(ctx, pair)
	if err != nil {
		logger.L().Error().Str("symbol", pair).Err(err).Msg("conversion leg failed")
		return 0, &ConversionError{Symbol: pair, Err: err}
	}

	refPrice, err := c.fetchRate(ctx, referencePair)
	if err != nil {
		logger.L().Error().Str("symbol", referencePair).Err(err).Msg("conversion leg failed")
		return 0, &ConversionError{Symbol: referencePair, Err: err}
	}

	// EURUSDT quotes USDT per EUR; EUR per USDT is its reciprocal.
	eurPerUSDT := 1 / refPrice

	return amount * unitPrice * eurPerUSDT, nil
}

// fetchRate returns the cached price for pair, or fetches and stores it.
func (c *Converter) fetchRate(ctx context.Context, pair string) (float64, error) {
	if price, ok := c.cache.Get(pair); ok {
		return price, nil
	}

	quote, err := c.ticker.GetCurrentPrice(ctx, pair)
	if err != nil {
		return 0, err
	}

	c.cache.Set(pair, quote.Price)
	return quote.Price, nil
}
