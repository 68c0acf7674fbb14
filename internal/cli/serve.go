package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ivywatch/internal/model"
	"ivywatch/internal/pipeline"
	"ivywatch/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API and run the pipeline on an interval",
	Long: `Serve starts the JSON API (latest snapshots, per-university metadata,
on-demand scrape triggers) and, unless the schedule is disabled, runs the
full pipeline every schedule_minutes.

Example:
  ivywatch serve
  ivywatch serve --memory
  IVYWATCH_SERVER_ADDR=:9090 ivywatch serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&sourcesFile, "sources", "", "YAML source list (default: built-in registry)")
	serveCmd.Flags().BoolVar(&useMemory, "memory", false, "use an in-memory store instead of MongoDB")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources, err := loadSources()
	if err != nil {
		return err
	}

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	p := pipeline.New(cfg, st)
	srv := server.New(st, p, sources)

	if cfg.Server.ScheduleMinutes > 0 {
		interval := time.Duration(cfg.Server.ScheduleMinutes) * time.Minute
		go runOnSchedule(p, sources, interval)
		if verbose {
			fmt.Fprintf(os.Stderr, "Scheduled pipeline every %v\n", interval)
		}
	}

	fmt.Fprintf(os.Stderr, "Listening on %s (%d sources)\n", cfg.Server.Addr, len(sources))
	return srv.Run(cfg.Server.Addr)
}

// runOnSchedule invokes the full pipeline on a fixed interval. The core
// exposes only Run; this ticker is the external trigger.
func runOnSchedule(p *pipeline.Pipeline, sources []model.Source, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		report, err := p.Run(context.Background(), sources)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scheduled run failed: %v\n", err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Scheduled run: saved=%d skipped=%d errors=%d sources=%d\n",
			report.SavedNewRecords, report.SkippedDuplicates, report.Errors, report.TotalSources)
	}
}
