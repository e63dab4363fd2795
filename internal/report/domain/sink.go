package domain

import "context"

// Sink receives a finished report. Sinks must be side-effect free on error:
// a failed sink fails the run, and the run is simply re-executed.
type Sink interface {
	Name() string
	Write(ctx context.Context, report *Report) error
}

// Report sources.
const (
	SourceAmazon       = "amazon"
	SourceTransactions = "transactions"
)
