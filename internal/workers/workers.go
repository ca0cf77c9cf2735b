package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers wires the background loops of the sync stack: the connectivity
// probe and the drain trigger. Both run until the process exits.
func NewWorkers(services *service.Services, cfg config.Workers, storeID string, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			&connectivityProbeWorker{
				monitor:  services.Monitor,
				interval: cfg.ProbeInterval,
				logger:   logger,
			},
			&syncTriggerWorker{
				trigger: services.Trigger,
				storeID: storeID,
				logger:  logger,
			},
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// connectivityProbeWorker pings the remote health endpoint on an interval
// and feeds the result into the connectivity monitor.
type connectivityProbeWorker struct {
	monitor  service.ConnectivityMonitor
	interval time.Duration
	logger   *logger.Logger
}

func (w *connectivityProbeWorker) Run() {
	w.logger.Info().
		Str("func", "connectivityProbeWorker.Run").
		Dur("interval", w.interval).
		Msg("starting connectivity probe")

	go w.monitor.RunProbe(context.Background(), w.interval)
}

// syncTriggerWorker starts the trigger controller loop for the configured
// store scope.
type syncTriggerWorker struct {
	trigger service.TriggerController
	storeID string
	logger  *logger.Logger
}

func (w *syncTriggerWorker) Run() {
	w.logger.Info().
		Str("func", "syncTriggerWorker.Run").
		Str("store_id", w.storeID).
		Msg("starting sync trigger controller")

	w.trigger.Start(context.Background(), w.storeID)
}
