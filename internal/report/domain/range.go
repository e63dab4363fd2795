package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/affistack/brandledger/internal/clock"
)

// Range keys; Key records which argument produced the range so file names
// and labels can reflect it.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeLast7     = "last7"
	RangeLast14    = "last14"
	RangeSingle    = "single"
)

// Range is an inclusive calendar date range for a report run.
type Range struct {
	Start time.Time
	End   time.Time
	Key   string
}

// ResolveRange parses a range argument. Supported forms: empty (yesterday),
// "today", "yesterday", "last7", "last14", or an explicit "YYYY-MM-DD".
func ResolveRange(arg string, clk clock.Clock) (Range, error) {
	today := clk.Now().Truncate(24 * time.Hour)
	arg = strings.ToLower(strings.TrimSpace(arg))

	switch arg {
	case "", RangeYesterday:
		day := today.AddDate(0, 0, -1)
		return Range{Start: day, End: day, Key: RangeYesterday}, nil
	case RangeToday:
		return Range{Start: today, End: today, Key: RangeToday}, nil
	case RangeLast7:
		return Range{Start: today.AddDate(0, 0, -6), End: today, Key: RangeLast7}, nil
	case RangeLast14:
		return Range{Start: today.AddDate(0, 0, -13), End: today, Key: RangeLast14}, nil
	}

	day, err := time.ParseInLocation("2006-01-02", arg, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid report range %q: %w", arg, err)
	}
	return Range{Start: day, End: day, Key: RangeSingle}, nil
}

func (r Range) SingleDay() bool { return r.Start.Equal(r.End) }

func (r Range) StartYMD() string { return r.Start.Format("2006-01-02") }
func (r Range) EndYMD() string   { return r.End.Format("2006-01-02") }

// Compact forms for the datafeed report endpoint.
func (r Range) StartCompact() string { return r.Start.Format("20060102") }
func (r Range) EndCompact() string   { return r.End.Format("20060102") }

// Label is the human-readable range shown in report headers.
func (r Range) Label() string {
	if r.SingleDay() {
		switch r.Key {
		case RangeToday:
			return r.EndYMD() + " · Today"
		case RangeYesterday:
			return r.EndYMD() + " · Yesterday"
		default:
			return r.EndYMD()
		}
	}

	label := r.StartYMD() + " → " + r.EndYMD()
	switch r.Key {
	case RangeLast7:
		return label + " · Last 7 days"
	case RangeLast14:
		return label + " · Last 14 days"
	default:
		return label
	}
}

// FileBase is the base name for file sinks, without extension.
func (r Range) FileBase() string {
	if r.SingleDay() {
		return "brand_report_" + r.EndYMD()
	}
	return fmt.Sprintf("brand_report_%s_to_%s_%s", r.StartYMD(), r.EndYMD(), r.Key)
}
