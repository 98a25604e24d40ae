// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.path", "clients.db")
	viper.SetDefault("archive.path", "archive.db")

	viper.SetDefault("export.path", "exports/")

	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "logs/carnet.log")
}
