package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers creates the background workers enabled by cfg.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.ReconcileInterval > 0 {
		w.workers = append(w.workers, NewReconcileWorker(services.BookService, cfg.ReconcileInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")

	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
