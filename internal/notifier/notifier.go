// Package notifier delivers reminder payloads: to the companion tray app
// when it is running, otherwise inside the application.
package notifier

import (
	"context"
	"errors"

	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
)

// ErrUnavailable is returned when a delivery mechanism cannot be reached.
var ErrUnavailable = errors.New("notification delivery unavailable")

type Deliverer interface {
	Deliver(ctx context.Context, n models.Notification) error
}

// Func adapts a function to the Deliverer interface.
type Func func(ctx context.Context, n models.Notification) error

func (f Func) Deliver(ctx context.Context, n models.Notification) error {
	return f(ctx, n)
}

// Fallback tries each deliverer in order until one succeeds. It never
// returns an error; when every deliverer fails the failure is logged.
type Fallback struct {
	chain []Deliverer
}

func NewFallback(chain ...Deliverer) *Fallback {
	var ds []Deliverer
	for _, d := range chain {
		if d != nil {
			ds = append(ds, d)
		}
	}
	return &Fallback{chain: ds}
}

func (f *Fallback) Deliver(ctx context.Context, n models.Notification) error {
	for i, d := range f.chain {
		err := safeDeliver(ctx, d, n)
		if err == nil {
			return nil
		}
		logger.Debug("Deliverer failed, trying next", "index", i, "tag", n.Tag, "error", err)
	}
	logger.Warn("No deliverer accepted notification", "tag", n.Tag, "title", n.Title)
	return nil
}

func safeDeliver(ctx context.Context, d Deliverer, n models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("deliverer panicked")
			logger.Error("Deliverer panicked", "recover", r)
		}
	}()
	return d.Deliver(ctx, n)
}
