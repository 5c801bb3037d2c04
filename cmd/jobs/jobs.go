// Package jobs provides the job status listing command for WildSight
package jobs

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/wildsight/wildsight-go/internal/conf"
	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/jobs"
)

// Command creates and returns the jobs command
func Command(settings *conf.Settings) *cobra.Command {
	var (
		name     string
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List background job status records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listJobs(settings, name, fromDate, toDate)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Filter by exact job name")
	cmd.Flags().StringVar(&fromDate, "from", "", "Earliest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Latest start date (YYYY-MM-DD)")

	return cmd
}

func listJobs(settings *conf.Settings, name, fromDate, toDate string) error {
	from, err := parseDateFlag(fromDate)
	if err != nil {
		return err
	}
	to, err := parseDateFlag(toDate)
	if err != nil {
		return err
	}

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database output is enabled")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	recorder := jobs.NewRecorder(store)
	statuses, err := recorder.Search(name, from, to)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tRUNTIME\tERROR")
	for i := range statuses {
		status := &statuses[i]
		end := ""
		if status.End != nil {
			end = status.End.Format(time.DateTime)
		}
		runtime, _ := jobs.Runtime(status)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			status.ID, status.Name, status.Start.Format(time.DateTime), end, runtime, status.Error)
	}
	return w.Flush()
}

// parseDateFlag converts a YYYY-MM-DD flag value to a time pointer; empty
// means no filter.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(datastore.DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &date, nil
}
