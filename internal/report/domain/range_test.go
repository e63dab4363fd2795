package domain

import (
	"testing"
	"time"

	"github.com/affistack/brandledger/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestResolveRange(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC))

	cases := []struct {
		arg   string
		start string
		end   string
		key   string
	}{
		{"", "2026-08-24", "2026-08-24", RangeYesterday},
		{"yesterday", "2026-08-24", "2026-08-24", RangeYesterday},
		{"today", "2026-08-25", "2026-08-25", RangeToday},
		{"Today", "2026-08-25", "2026-08-25", RangeToday},
		{"last7", "2026-08-19", "2026-08-25", RangeLast7},
		{"last14", "2026-08-12", "2026-08-25", RangeLast14},
		{"2026-08-01", "2026-08-01", "2026-08-01", RangeSingle},
	}
	for _, tc := range cases {
		rng, err := ResolveRange(tc.arg, clk)
		assert.NoError(t, err, tc.arg)
		assert.Equal(t, tc.start, rng.StartYMD(), tc.arg)
		assert.Equal(t, tc.end, rng.EndYMD(), tc.arg)
		assert.Equal(t, tc.key, rng.Key, tc.arg)
	}
}

func TestResolveRangeRejectsGarbage(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC))

	for _, arg := range []string{"nope", "08/01/2026", "2026-13-40", "last30"} {
		_, err := ResolveRange(arg, clk)
		assert.Error(t, err, arg)
	}
}

func TestRangeFormatting(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC))

	rng, err := ResolveRange("yesterday", clk)
	assert.NoError(t, err)
	assert.True(t, rng.SingleDay())
	assert.Equal(t, "20260824", rng.StartCompact())
	assert.Equal(t, "2026-08-24 · Yesterday", rng.Label())
	assert.Equal(t, "brand_report_2026-08-24", rng.FileBase())

	rng, err = ResolveRange("last7", clk)
	assert.NoError(t, err)
	assert.False(t, rng.SingleDay())
	assert.Equal(t, "2026-08-19 → 2026-08-25 · Last 7 days", rng.Label())
	assert.Equal(t, "brand_report_2026-08-19_to_2026-08-25_last7", rng.FileBase())
}
