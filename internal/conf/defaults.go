// defaults.go viper defaults for the application configuration
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "Tastebase")

	// Log file settings
	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "logs/tastebase.log")
	viper.SetDefault("log.maxsize", 10)
	viper.SetDefault("log.maxage", 28)

	// Database settings
	viper.SetDefault("database.sqlite.enabled", true)
	viper.SetDefault("database.sqlite.path", "tastebase.db")
	viper.SetDefault("database.mysql.enabled", false)
	viper.SetDefault("database.mysql.username", "tastebase")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.database", "tastebase")
	viper.SetDefault("database.mysql.host", "localhost")
	viper.SetDefault("database.mysql.port", "3306")

	// HTTP server settings
	viper.SetDefault("http.address", ":8080")

	// Upload ledger settings
	viper.SetDefault("uploads.path", "data/uploads")
	viper.SetDefault("uploads.maxsize", 16*1024*1024)
	viper.SetDefault("uploads.allowedtypes", []string{"jpg", "jpeg", "png", "bmp"})
}
