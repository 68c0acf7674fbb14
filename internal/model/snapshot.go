package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PageType classifies which kind of university page a source points at.
// The extractor suite dispatches on it.
type PageType string

const (
	PageFees       PageType = "fees"
	PageAdmissions PageType = "admissions"
	PageDeadlines  PageType = "deadlines"
	PagePrograms   PageType = "programs"
	PageAid        PageType = "aid"
	PageAbout      PageType = "about"
)

// PageTypes lists every known page type in display order.
var PageTypes = []PageType{
	PageFees,
	PageAdmissions,
	PageDeadlines,
	PagePrograms,
	PageAid,
	PageAbout,
}

// ParsePageType converts a raw string into a PageType.
func ParsePageType(s string) (PageType, error) {
	pt := PageType(s)
	if !pt.Valid() {
		return "", fmt.Errorf("unknown page type: %q", s)
	}
	return pt, nil
}

// Valid reports whether the page type is one of the known categories.
func (p PageType) Valid() bool {
	switch p {
	case PageFees, PageAdmissions, PageDeadlines, PagePrograms, PageAid, PageAbout:
		return true
	}
	return false
}

// Source identifies one page to monitor. Sources are defined externally
// (registry defaults or a YAML file) and consumed by value.
type Source struct {
	University string   `json:"university" yaml:"university"`
	PageType   PageType `json:"page_type" yaml:"page_type"`
	URL        string   `json:"url" yaml:"url"`
}

// Snapshot is one persisted observation of a source. No two snapshots may
// share the same (URL, ContentHash) pair; content that normalizes to a known
// fingerprint is never re-stored.
type Snapshot struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	University  string          `json:"university" bson:"university"`
	PageType    PageType        `json:"page_type" bson:"page_type"`
	URL         string          `json:"url" bson:"url"`
	ExtractedAt time.Time       `json:"extracted_at" bson:"extracted_at"`
	ContentHash string          `json:"content_hash" bson:"content_hash"`
	Payload     json.RawMessage `json:"payload" bson:"payload"`
}

// RunReport aggregates the outcome of a pipeline run. It is surfaced to
// callers and never persisted.
type RunReport struct {
	SavedNewRecords   int `json:"saved_new_records"`
	SkippedDuplicates int `json:"skipped_duplicates"`
	Errors            int `json:"errors"`
	TotalSources      int `json:"total_sources"`
}

// Add folds another report into this one.
func (r *RunReport) Add(other *RunReport) {
	r.SavedNewRecords += other.SavedNewRecords
	r.SkippedDuplicates += other.SkippedDuplicates
	r.Errors += other.Errors
	r.TotalSources += other.TotalSources
}
