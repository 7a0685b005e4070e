package serve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/server"
)

// Command creates the command that runs the HTTP service.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the charting service",
		Long:  "Start the HTTP service exposing the treatment catalog, odontogram sessions and chart rendering.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(settings)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the serve command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")
	cmd.Flags().StringVar(&settings.Chart.Background, "background", viper.GetString("chart.background"), "Path to the odontogram background image")
	cmd.Flags().StringVar(&settings.Media.Path, "mediapath", viper.GetString("media.path"), "Directory for uploaded radiographs")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
