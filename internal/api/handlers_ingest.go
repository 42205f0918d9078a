package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wenjia-h/corpustree/internal/pipeline"
	"github.com/wenjia-h/corpustree/internal/source"
)

func (s *Server) handleCreateCorpus(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	corpusID := r.FormValue("corpus_id")
	if corpusID == "" {
		corpusID = pipeline.ContentHashHex(data)[:16]
	}
	if _, exists := s.corpora.Get(corpusID); exists {
		jsonError(w, fmt.Sprintf("corpus %q already built", corpusID), http.StatusConflict)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.ContentHashHex([]byte(fmt.Sprintf("%s-%d", filename, now.UnixNano())))[:20],
		CorpusID:  corpusID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    job.ID,
		"corpus_id": job.CorpusID,
		"status":    job.Status,
		"poll_url":  fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    snap.ID,
		"corpus_id": snap.CorpusID,
		"status":    snap.Status,
		"phase":     snap.Phase,
		"progress":  snap.Progress,
	})
}

func (s *Server) handleListCorpora(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		CorpusID  string    `json:"corpus_id"`
		Name      string    `json:"name"`
		Filename  string    `json:"filename"`
		NodeCount int       `json:"node_count"`
		EdgeCount int       `json:"edge_count"`
		Depth     int       `json:"depth"`
		CreatedAt time.Time `json:"created_at"`
	}
	list := s.corpora.List()
	out := make([]entry, 0, len(list))
	for _, c := range list {
		out = append(out, entry{
			CorpusID:  c.ID,
			Name:      c.Name,
			Filename:  c.Filename,
			NodeCount: c.Summary.NodeCount,
			EdgeCount: c.Summary.EdgeCount,
			Depth:     c.Summary.Depth,
			CreatedAt: c.CreatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"corpora": out})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
