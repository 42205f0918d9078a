package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wenjia-h/corpustree/internal/graphstore"
	"github.com/wenjia-h/corpustree/internal/metrics"
	"github.com/wenjia-h/corpustree/internal/registry"
	"github.com/wenjia-h/corpustree/internal/source"
	"github.com/wenjia-h/corpustree/internal/tree"
)

// Worker processes conversion jobs: parse the upload, build the tree,
// validate it, register it, and optionally publish downstream.
type Worker struct {
	corpora    *registry.Registry
	graphs     *graphstore.Client // nil when unconfigured
	buildStats *metrics.Stats
	log        *slog.Logger
	srcOpts    source.Options
}

func NewWorker(corpora *registry.Registry, graphs *graphstore.Client, buildStats *metrics.Stats, log *slog.Logger, srcOpts source.Options) *Worker {
	return &Worker{
		corpora:    corpora,
		graphs:     graphs,
		buildStats: buildStats,
		log:        log,
		srcOpts:    srcOpts,
	}
}

// Process runs one job through every pipeline phase. Terminal status is
// always set before returning.
func (w *Worker) Process(ctx context.Context, job *Job) {
	started := time.Now()
	log := w.log.With("job_id", job.ID, "corpus_id", job.CorpusID, "filename", job.Filename)
	log.Info("job started")

	data := job.FileData()
	job.SetFileData(nil) // raw bytes are not needed after parsing

	job.SetStatus(StatusParsing, "parse")
	loader, err := source.ForFile(job.Filename, w.srcOpts)
	if err != nil {
		w.fail(job, log, fmt.Errorf("select loader: %w", err))
		return
	}
	rec, err := loader.Load(bytes.NewReader(data), job.Filename)
	if err != nil {
		w.fail(job, log, fmt.Errorf("parse %s: %w", job.Filename, err))
		return
	}
	if rec.Name == "" || rec.Name == "unnamed" {
		rec.Name = job.Name
	}

	job.SetStatus(StatusBuilding, "build")
	t, err := tree.Build(rec)
	if err != nil {
		w.fail(job, log, fmt.Errorf("build tree: %w", err))
		return
	}

	job.SetStatus(StatusValidating, "validate")
	if err := t.Validate(); err != nil {
		w.fail(job, log, fmt.Errorf("validate tree: %w", err))
		return
	}
	summary := tree.Summarize(t)
	job.SetCounts(summary.NodeCount, summary.EdgeCount, summary.Depth)
	w.buildStats.Record(time.Since(started))

	if err := w.corpora.Put(&registry.Corpus{
		ID:        job.CorpusID,
		Name:      job.Name,
		Filename:  job.Filename,
		Tree:      t,
		Summary:   summary,
		CreatedAt: time.Now(),
	}); err != nil {
		w.fail(job, log, err)
		return
	}

	if w.graphs != nil {
		job.SetStatus(StatusPublishing, "publish")
		if err := w.graphs.PublishGraph(ctx, job.CorpusID, job.Name, t.ToNodeLink()); err != nil {
			log.Warn("publish failed", "error", err)
			job.AddError(fmt.Sprintf("publish: %v", err))
			job.SetStatus(StatusPartial, "done")
			return
		}
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed",
		"nodes", summary.NodeCount,
		"edges", summary.EdgeCount,
		"depth", summary.Depth,
		"duration_ms", time.Since(started).Milliseconds())
}

func (w *Worker) fail(job *Job, log *slog.Logger, err error) {
	log.Error("job failed", "phase", job.Phase, "error", err)
	job.AddError(err.Error())
	job.SetStatus(StatusFailed, job.Phase)
}
