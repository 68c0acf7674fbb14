// Package server exposes the dashboard JSON API and on-demand scrape
// triggers over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"ivywatch/internal/model"
	"ivywatch/internal/pipeline"
	"ivywatch/internal/registry"
	"ivywatch/internal/store"
)

const defaultLatestLimit = 80

// Server wires the store, the pipeline, and the source registry into HTTP
// handlers.
type Server struct {
	engine   *gin.Engine
	store    store.Store
	pipeline *pipeline.Pipeline
	sources  []model.Source

	mu      sync.Mutex
	lastRun *lastRunStatus
}

type lastRunStatus struct {
	Time   time.Time        `json:"time"`
	Result *model.RunReport `json:"result"`
}

// New builds the server and its routes.
func New(st store.Store, p *pipeline.Pipeline, sources []model.Source) *Server {
	s := &Server{
		store:    st,
		pipeline: p,
		sources:  sources,
	}

	r := gin.Default()
	r.GET("/ping", s.ping)
	r.GET("/api/latest", s.latest)
	r.GET("/api/universities", s.universities)
	r.GET("/run", s.runAll)
	r.GET("/run/:university", s.runUniversity)
	s.engine = r

	return s
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) latest(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLatestLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLatestLimit
	}

	snaps, err := s.store.Latest(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(snaps))
	for _, snap := range snaps {
		items = append(items, gin.H{
			"university":   snap.University,
			"page_type":    snap.PageType,
			"url":          snap.URL,
			"extracted_at": snap.ExtractedAt.UTC().Format(time.RFC3339),
			"data":         decodePayload(snap.Payload),
		})
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) universities(c *gin.Context) {
	ctx := c.Request.Context()
	meta := gin.H{}

	for _, uni := range registry.Universities(s.sources) {
		snaps, err := s.store.ListByUniversity(ctx, uni)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var lastUpdated *string
		if len(snaps) > 0 {
			t := snaps[0].ExtractedAt.UTC().Format(time.RFC3339)
			lastUpdated = &t
		}

		counts := gin.H{}
		for _, pt := range model.PageTypes {
			n, err := s.store.Count(ctx, store.Filter{University: uni, PageType: pt})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			counts[string(pt)] = n
		}

		meta[uni] = gin.H{"last_updated": lastUpdated, "counts": counts}
	}

	c.JSON(http.StatusOK, gin.H{
		"source_count": len(s.sources),
		"universities": meta,
	})
}

func (s *Server) runAll(c *gin.Context) {
	report, err := s.pipeline.Run(c.Request.Context(), s.sources)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": report})
		return
	}

	status := &lastRunStatus{Time: time.Now().UTC(), Result: report}
	s.mu.Lock()
	s.lastRun = status
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message": "Scrape run completed",
		"result":  report,
		"time":    status.Time.Format(time.RFC3339),
	})
}

func (s *Server) runUniversity(c *gin.Context) {
	name := c.Param("university")
	srcs := registry.ForUniversity(s.sources, name)
	if len(srcs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown university: " + name})
		return
	}

	total := &model.RunReport{}
	for _, src := range srcs {
		report, err := s.pipeline.RunOne(c.Request.Context(), src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total.Add(report)
	}

	c.JSON(http.StatusOK, gin.H{
		"university":         srcs[0].University,
		"saved_new_records":  total.SavedNewRecords,
		"errors":             total.Errors,
		"skipped_duplicates": total.SkippedDuplicates,
	})
}

// decodePayload parses the stored extraction payload; payloads that fail to
// parse are served as opaque text.
func decodePayload(raw json.RawMessage) any {
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		return gin.H{"raw": string(raw)}
	}
	return v
}
