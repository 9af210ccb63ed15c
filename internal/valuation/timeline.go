package valuation

import (
	"sort"
	"time"

	"github.com/pmarinho/fintrack/internal/domain/dto"
)

// BuildTimeline reconstructs a unified multi-account series from valuated
// balance records on the grid of all observed record dates (day precision,
// UTC).
//
// Per account, records are ordered chronologically with input order breaking
// timestamp ties. On grid dates where an account has no record of its own,
// the last known value is carried forward; values are never back-filled or
// interpolated, and an account is simply absent from grid points before its
// first observation. A record's value is its EurValue when present, its
// native balance otherwise.
func BuildTimeline(records []dto.BalanceRecordResponse) []dto.TimelinePoint {
	if len(records) == 0 {
		return nil
	}

	type observation struct {
		day   time.Time
		value float64
	}

	// Group per account preserving input order for equal timestamps.
	byAccount := make(map[string][]observation)
	var accountIDs []string

	daysSeen := make(map[time.Time]struct{})
	var grid []time.Time

	for _, rec := range records {
		if rec.Account == nil {
			continue
		}
		id := rec.Account.ID
		if _, ok := byAccount[id]; !ok {
			accountIDs = append(accountIDs, id)
		}

		value := rec.Balance
		if rec.EurValue != nil {
			value = *rec.EurValue
		}

		day := rec.RecordedAt.UTC().Truncate(24 * time.Hour)
		byAccount[id] = append(byAccount[id], observation{day: day, value: value})

		if _, ok := daysSeen[day]; !ok {
			daysSeen[day] = struct{}{}
			grid = append(grid, day)
		}
	}

	sort.Slice(grid, func(i, j int) bool { return grid[i].Before(grid[j]) })
	for _, id := range accountIDs {
		obs := byAccount[id]
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].day.Before(obs[j].day) })
	}

	points := make([]dto.TimelinePoint, 0, len(grid))
	cursor := make(map[string]int, len(accountIDs))
	last := make(map[string]float64, len(accountIDs))
	known := make(map[string]bool, len(accountIDs))

	for _, day := range grid {
		point := dto.TimelinePoint{Date: day, Values: make(map[string]float64)}

		for _, id := range accountIDs {
			obs := byAccount[id]
			// Advance past every observation at or before this grid date;
			// the latest one wins when a day has multiple records.
			for cursor[id] < len(obs) && !obs[cursor[id]].day.After(day) {
				last[id] = obs[cursor[id]].value
				known[id] = true
				cursor[id]++
			}
			if known[id] {
				point.Values[id] = last[id]
				point.Total += last[id]
			}
		}

		points = append(points, point)
	}

	return points
}
