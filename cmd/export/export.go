// Package export provides the CSV export commands for WildSight
package export

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wildsight/wildsight-go/internal/conf"
	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/jobs"
)

// Command creates and returns the export command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sightings or the life list to a CSV file",
	}

	cmd.AddCommand(sightingsCommand(settings))
	cmd.AddCommand(lifeListCommand(settings))

	return cmd
}

func sightingsCommand(settings *conf.Settings) *cobra.Command {
	var (
		fileName   string
		fromDate   string
		toDate     string
		locationID uint
		speciesID  uint
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "sightings",
		Short: "Export sightings matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveExportPath(settings, fileName)
			if err != nil {
				return err
			}
			filter := datastore.SightingFilter{
				FromDate:   fromDate,
				ToDate:     toDate,
				LocationID: locationID,
				SpeciesID:  speciesID,
			}
			return runJob(settings, jobs.NewSightingsExportJob(filter, path), userID)
		},
	}

	cmd.Flags().StringVarP(&fileName, "file", "f", "sightings.csv", "Output file name")
	cmd.Flags().StringVar(&fromDate, "from", "", "Earliest sighting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Latest sighting date (YYYY-MM-DD)")
	cmd.Flags().UintVar(&locationID, "location", 0, "Restrict to one location ID")
	cmd.Flags().UintVar(&speciesID, "species", 0, "Restrict to one species ID")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Acting user ID recorded on the job")

	return cmd
}

func lifeListCommand(settings *conf.Settings) *cobra.Command {
	var (
		fileName   string
		categoryID uint
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "lifelist",
		Short: "Export the life list, optionally restricted to one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveExportPath(settings, fileName)
			if err != nil {
				return err
			}
			return runJob(settings, jobs.NewLifeListExportJob(categoryID, path), userID)
		},
	}

	cmd.Flags().StringVarP(&fileName, "file", "f", "lifelist.csv", "Output file name")
	cmd.Flags().UintVar(&categoryID, "category", 0, "Restrict to one category ID")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Acting user ID recorded on the job")

	return cmd
}

// resolveExportPath joins a relative output file name onto the configured
// data exchange directory.
func resolveExportPath(settings *conf.Settings, fileName string) (string, error) {
	if filepath.IsAbs(fileName) {
		return fileName, nil
	}
	dir, err := settings.GetDataPath("exports")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// runJob opens the store, starts the job and waits for it to finish.
func runJob(settings *conf.Settings, runner jobs.Runner, userID uint) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database output is enabled")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	job := jobs.NewJob(store, runner, jobs.UserSnapshot{ID: userID})
	if err := job.Start(); err != nil {
		return err
	}
	if err := job.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s completed\n", runner.Name())
	return nil
}
