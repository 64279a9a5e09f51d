// Package notifier delivers scan reports over pluggable channels.
package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"LeapsRadar/internal/model"
)

// Notifier delivers a structured scan report over one channel. Delivery
// failure is reported back to the caller but never blocks or rolls back the
// scan's own state.
type Notifier interface {
	Deliver(ctx context.Context, report *model.ScanReport) error
	Name() string
}

// DeliverWithRetry delivers a report with exponential backoff retry.
func DeliverWithRetry(ctx context.Context, n Notifier, report *model.ScanReport, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Deliver(ctx, report); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] %s delivery failed (attempt %d/%d): %v, retrying in %v", n.Name(), i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
