// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "OdontoSys")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "odontosys.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8090")
	viper.SetDefault("webserver.debug", false)

	viper.SetDefault("chart.canvaswidth", 700)
	viper.SetDefault("chart.canvasheight", 873)
	viper.SetDefault("chart.imagewidth", 700)
	viper.SetDefault("chart.imageheight", 873)
	viper.SetDefault("chart.background", "")

	viper.SetDefault("media.path", "media/")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "odontosys.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "odontosys")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "odontosys")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}
