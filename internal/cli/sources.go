package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := loadSources()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UNIVERSITY\tPAGE TYPE\tURL")
		for _, s := range sources {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.University, s.PageType, s.URL)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().StringVar(&sourcesFile, "sources", "", "YAML source list (default: built-in registry)")
}
