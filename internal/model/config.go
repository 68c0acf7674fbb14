package model

import (
	"fmt"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http"`
	Retention RetentionConfig `mapstructure:"retention" yaml:"retention"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline" yaml:"pipeline"`
	Mongo     MongoConfig     `mapstructure:"mongo" yaml:"mongo"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// HTTPConfig controls outbound fetches.
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RequestDelay  time.Duration `mapstructure:"request_delay" yaml:"request_delay"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes  int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
}

// RetentionConfig bounds storage growth.
type RetentionConfig struct {
	// MaxRecordsPerUniversity keeps only the newest N snapshots per
	// university, across all page types.
	MaxRecordsPerUniversity int `mapstructure:"max_records_per_university" yaml:"max_records_per_university"`
}

// PipelineConfig controls batch execution.
type PipelineConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// MongoConfig locates the snapshot store.
type MongoConfig struct {
	URI        string `mapstructure:"uri" yaml:"uri"`
	Database   string `mapstructure:"database" yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// ServerConfig controls the API server and the interval scheduler.
type ServerConfig struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	ScheduleMinutes int    `mapstructure:"schedule_minutes" yaml:"schedule_minutes"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       25 * time.Second,
			RequestDelay:  time.Second,
			UserAgent:     "ivywatch/1.0 (student project; respectful crawler)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Retention: RetentionConfig{
			MaxRecordsPerUniversity: 30,
		},
		Pipeline: PipelineConfig{
			Concurrency: 4,
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "ivywatch",
			Collection: "snapshots",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ScheduleMinutes: 180,
		},
	}
}

// Validate rejects settings the pipeline cannot run with. Called once at
// startup; a failure here is fatal, not per-run.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", c.HTTP.Timeout)
	}
	if c.HTTP.RequestDelay < 0 {
		return fmt.Errorf("http.request_delay must not be negative, got %v", c.HTTP.RequestDelay)
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must not be empty")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes)
	}
	if c.Retention.MaxRecordsPerUniversity <= 0 {
		return fmt.Errorf("retention.max_records_per_university must be positive, got %d", c.Retention.MaxRecordsPerUniversity)
	}
	if c.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("pipeline.concurrency must be positive, got %d", c.Pipeline.Concurrency)
	}
	if c.Server.ScheduleMinutes < 0 {
		return fmt.Errorf("server.schedule_minutes must not be negative, got %d", c.Server.ScheduleMinutes)
	}
	return nil
}
