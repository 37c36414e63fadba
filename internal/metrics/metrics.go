// Package metrics records transfer engine instruments through OpenTelemetry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Transfer outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// ErrNilMeter is returned when no meter is given.
var ErrNilMeter = errors.New("nil meter")

// Recorder holds the transfer instruments. A nil *Recorder records nothing.
type Recorder struct {
	transfers metric.Int64Counter
	retries   metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	transfers, err := meter.Int64Counter("ledger.transfers",
		metric.WithDescription("Transfer requests by outcome."))
	if err != nil {
		return nil, fmt.Errorf("create transfers counter: %w", err)
	}

	retries, err := meter.Int64Counter("ledger.transfer.retries",
		metric.WithDescription("Transfer attempts repeated after a version conflict."))
	if err != nil {
		return nil, fmt.Errorf("create retries counter: %w", err)
	}

	duration, err := meter.Float64Histogram("ledger.transfer.duration",
		metric.WithDescription("Transfer processing time."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Recorder{
		transfers: transfers,
		retries:   retries,
		duration:  duration,
	}, nil
}

// Transfer records one finished transfer request.
func (r *Recorder) Transfer(ctx context.Context, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	r.transfers.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// Retry records one repeated attempt.
func (r *Recorder) Retry(ctx context.Context) {
	if r == nil {
		return
	}

	r.retries.Add(ctx, 1)
}
