package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/export"
	"github.com/wudi/pagekit/photo"
)

// newPassportCmd creates the passport command.
func (a *App) newPassportCmd() *cobra.Command {
	var (
		preset  string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "passport <image>",
		Short: "Prepare an ID photo from a portrait image",
		Long: `Center-crop a portrait image to an ID-photo preset and resample it
to print resolution.

Available presets:
  passport-35x45   35 x 45 mm at 300 dpi
  passport-50x50   50 x 50 mm at 300 dpi
  visa-33x48       33 x 48 mm at 300 dpi

Examples:
  pagekit passport portrait.jpg
  pagekit passport --preset visa-33x48 portrait.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := photo.PresetByName(preset)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := photo.Process(data, p, photo.Config{Quality: quality})
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s_%s.jpg", baseName(args[0]), p.Name)
			return a.deliver([]export.Artifact{{Name: name, Data: out}}, args[0], p.Name)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", photo.Passport35x45.Name, "ID photo preset")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality, 1-100 (default 92)")

	return cmd
}
