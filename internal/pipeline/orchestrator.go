package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wenjia-h/corpustree/internal/cleaner"
	"github.com/wenjia-h/corpustree/internal/config"
	"github.com/wenjia-h/corpustree/internal/graphstore"
	"github.com/wenjia-h/corpustree/internal/metrics"
	"github.com/wenjia-h/corpustree/internal/registry"
	"github.com/wenjia-h/corpustree/internal/source"
	"github.com/wenjia-h/corpustree/internal/tabular"
)

// Orchestrator manages the corpus conversion pipeline.
type Orchestrator struct {
	jobs       *JobStore
	queue      chan *Job
	corpora    *registry.Registry
	graphs     *graphstore.Client // nil when unconfigured
	buildStats *metrics.Stats
	log        *slog.Logger
	cfg        config.Config
	srcOpts    source.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator wires up the pipeline. graphs may be nil.
func NewOrchestrator(cfg config.Config, corpora *registry.Registry, graphs *graphstore.Client, buildStats *metrics.Stats, log *slog.Logger) *Orchestrator {
	srcOpts := source.Options{
		Tabular: tabular.Options{
			SegColumn: cfg.SegColumn,
			LnColumn:  cfg.LnColumn,
		},
	}
	if cfg.CleanCells {
		srcOpts.Tabular.Clean = cleaner.DefaultRules()
	}
	return &Orchestrator{
		jobs:       NewJobStore(cfg.JobTTL),
		queue:      make(chan *Job, cfg.MaxQueueSize),
		corpora:    corpora,
		graphs:     graphs,
		buildStats: buildStats,
		log:        log,
		cfg:        cfg,
		srcOpts:    srcOpts,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.corpora, o.graphs, o.buildStats, o.log, o.srcOpts)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Evict expired jobs and corpora.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
				o.corpora.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
