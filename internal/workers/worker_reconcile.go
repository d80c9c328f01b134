// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
)

// ReconcileWorker periodically rebuilds the book sets stored on users from
// the author of every book. It repairs back-references left stale by
// partially failed book writes.
type ReconcileWorker struct {
	books    service.BookService
	interval time.Duration

	logger *logger.Logger
}

func NewReconcileWorker(books service.BookService, interval time.Duration, logger *logger.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		books:    books,
		interval: interval,
		logger:   logger,
	}
}

// Run reconciles every interval until ctx is cancelled. A failed pass is
// logged and retried on the next tick.
func (w *ReconcileWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("reconcile worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("reconcile worker stopped")
			return
		case <-ticker.C:
			w.reconcile(ctx)
		}
	}
}

func (w *ReconcileWorker) reconcile(ctx context.Context) {
	ctx = w.logger.WithContext(ctx)

	updated, err := w.books.ReconcileAuthors(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Msg("error reconciling book references")
		}
		return
	}

	w.logger.Debug().Int64("users_updated", updated).Msg("book references reconciled")
}
