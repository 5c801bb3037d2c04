package conf

import (
	"github.com/wildsight/wildsight-go/internal/errors"
)

// ValidateSettings checks the loaded settings for inconsistencies that would
// prevent the application from running.
func ValidateSettings(settings *Settings) error {
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return errors.Newf("only one database output may be enabled at a time").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return errors.Newf("no database output is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return errors.Newf("sqlite output requires a database path").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("field", "output.sqlite.path").
			Build()
	}

	if settings.Output.MySQL.Enabled {
		if settings.Output.MySQL.Database == "" || settings.Output.MySQL.Host == "" {
			return errors.Newf("mysql output requires a database name and host").
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}

	return nil
}
