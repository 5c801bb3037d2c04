// Package importer provides the CSV import commands for WildSight
package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wildsight/wildsight-go/internal/conf"
	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/jobs"
)

// Command creates and returns the import command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import sightings or status ratings from a CSV file",
	}

	cmd.AddCommand(sightingsCommand(settings))
	cmd.AddCommand(ratingsCommand(settings))

	return cmd
}

func sightingsCommand(settings *conf.Settings) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "sightings <file>",
		Short: "Import sightings, creating categories, species and locations as needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(settings, args[0], userID, func(file *os.File, user jobs.UserSnapshot) jobs.Runner {
				return jobs.NewSightingsImportJob(file, file.Name(), user)
			})
		},
	}

	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Acting user ID recorded on the job")
	return cmd
}

func ratingsCommand(settings *conf.Settings) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "ratings <file>",
		Short: "Import species conservation status ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(settings, args[0], userID, func(file *os.File, user jobs.UserSnapshot) jobs.Runner {
				return jobs.NewStatusRatingImportJob(file, file.Name(), user)
			})
		},
	}

	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Acting user ID recorded on the job")
	return cmd
}

// resolveImportPath tries the given path as-is, then relative to the
// configured data exchange directory.
func resolveImportPath(settings *conf.Settings, fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil || filepath.IsAbs(fileName) {
		return fileName, nil
	}
	dir, err := settings.GetDataPath("imports")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// runImport opens the input file, starts the import job and waits for it.
func runImport(settings *conf.Settings, fileName string, userID uint,
	makeRunner func(file *os.File, user jobs.UserSnapshot) jobs.Runner) error {
	path, err := resolveImportPath(settings, fileName)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database output is enabled")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	runner := makeRunner(file, jobs.UserSnapshot{ID: userID})
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
