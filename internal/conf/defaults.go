// conf/defaults.go default values for configuration settings
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the configuration parameters.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "WildSight")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "wildsight.log")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "wildsight.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "wildsight")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "wildsight")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("dataexchange.path", "data")
}
