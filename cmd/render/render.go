package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/datastore"
	"github.com/odontosys/odontosys/internal/odontogram"
	"github.com/odontosys/odontosys/internal/render"
)

// Command creates the command that renders a stored odontogram to a PNG file.
func Command(settings *conf.Settings) *cobra.Command {
	var odontogramID uint
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a stored odontogram to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if odontogramID == 0 {
				return fmt.Errorf("--id is required")
			}
			return renderChart(settings, odontogramID, outputPath)
		},
	}

	cmd.Flags().UintVar(&odontogramID, "id", 0, "Odontogram ID to render")
	cmd.Flags().StringVar(&outputPath, "output", "odontogram.png", "Output PNG file path")
	cmd.Flags().StringVar(&settings.Chart.Background, "background", viper.GetString("chart.background"), "Path to the odontogram background image")

	return cmd
}

func renderChart(settings *conf.Settings, id uint, outputPath string) error {
	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database output enabled, enable sqlite or mysql in the configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer ds.Close()

	og, err := ds.GetOdontogram(id)
	if err != nil {
		return fmt.Errorf("failed to load odontogram %d: %w", id, err)
	}

	space, err := odontogram.NewChartSpace(
		settings.Chart.CanvasWidth, settings.Chart.CanvasHeight,
		settings.Chart.ImageWidth, settings.Chart.ImageHeight,
	)
	if err != nil {
		return fmt.Errorf("invalid chart dimensions: %w", err)
	}

	renderer := render.New(space)
	if settings.Chart.Background != "" {
		if err := renderer.LoadBackground(settings.Chart.Background); err != nil {
			return fmt.Errorf("failed to load background image: %w", err)
		}
	}

	findings := make([]odontogram.Finding, 0, len(og.Findings))
	for i := range og.Findings {
		findings = append(findings, datastore.FromRecord(&og.Findings[i]))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := renderer.RenderPNG(f, findings); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Printf("Rendered %d findings to %s\n", len(findings), outputPath)
	return nil
}
