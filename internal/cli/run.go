package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ivywatch/internal/model"
	"ivywatch/internal/pipeline"
	"ivywatch/internal/registry"
	"ivywatch/internal/store"
)

var (
	sourcesFile string
	university  string
	useMemory   bool
	runTimeout  time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scrape pipeline once",
	Long: `Run fetches every registered source, extracts structured facts, and
persists a snapshot for each page whose content changed since the last
observation. Unchanged pages are skipped; failed fetches are counted and
never abort the batch. Afterwards each university is trimmed down to the
configured retention cap.

Example:
  ivywatch run
  ivywatch run --university Yale
  ivywatch run --sources sources.yaml --timeout 10m`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&sourcesFile, "sources", "", "YAML source list (default: built-in registry)")
	runCmd.Flags().StringVar(&university, "university", "", "re-scrape a single university's sources (no retention trim)")
	runCmd.Flags().BoolVar(&useMemory, "memory", false, "use an in-memory store instead of MongoDB")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "total timeout for the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources, err := loadSources()
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	p := pipeline.New(cfg, st)

	var report *model.RunReport
	if university != "" {
		report, err = runUniversity(ctx, p, sources, university)
	} else {
		if verbose {
			fmt.Fprintf(os.Stderr, "Scraping %d sources (delay %v, retention %d per university)\n",
				len(sources), cfg.HTTP.RequestDelay, cfg.Retention.MaxRecordsPerUniversity)
		}
		report, err = p.Run(ctx, sources)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved:    %d\n", report.SavedNewRecords)
	fmt.Printf("Skipped:  %d (unchanged content)\n", report.SkippedDuplicates)
	fmt.Printf("Errors:   %d\n", report.Errors)
	fmt.Printf("Sources:  %d\n", report.TotalSources)

	return nil
}

// runUniversity loops the single-source variant over one university's
// sources. Retention is not applied on demand.
func runUniversity(ctx context.Context, p *pipeline.Pipeline, sources []model.Source, name string) (*model.RunReport, error) {
	srcs := registry.ForUniversity(sources, name)
	if len(srcs) == 0 {
		return nil, fmt.Errorf("unknown university: %q", name)
	}

	total := &model.RunReport{}
	for _, src := range srcs {
		report, err := p.RunOne(ctx, src)
		if err != nil {
			return total, err
		}
		total.Add(report)
	}
	return total, nil
}

func loadSources() ([]model.Source, error) {
	if sourcesFile == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(sourcesFile)
}

func openStore(ctx context.Context, cfg *model.Config) (store.Store, error) {
	if useMemory {
		return store.NewMemory(), nil
	}
	st, err := store.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
