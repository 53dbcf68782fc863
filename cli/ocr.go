package cli

import (
	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/pipeline"
)

// newOCRCmd creates the ocr command.
func (a *App) newOCRCmd() *cobra.Command {
	var (
		pages string
		langs []string
		dpi   float64
	)

	cmd := &cobra.Command{
		Use:   "ocr <file>",
		Short: "Recognize text on selected pages",
		Long: `Rasterize the selected pages and run text recognition over them,
writing one plain-text file with the recognized text per page.

Examples:
  pagekit ocr scan.pdf
  pagekit ocr --lang deu --lang eng --pages 1-5 scan.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openSelected(cmd, args[0], pages)
			if err != nil {
				return err
			}
			if len(langs) == 0 {
				langs = a.cfg.OCR.Languages
			}
			if dpi == 0 {
				dpi = float64(a.cfg.OCR.DPI)
			}
			job, err := w.RecognizeJob(pipeline.OCRSpec{Languages: langs, DPI: dpi})
			if err != nil {
				return err
			}
			artifacts, err := w.Run(cmd.Context(), job, a.progress())
			if err != nil {
				return err
			}
			return a.deliver(artifacts, args[0], "ocr")
		},
	}

	cmd.Flags().StringVarP(&pages, "pages", "p", "", "Pages to recognize, e.g. \"1-3, 7\" (default: all)")
	cmd.Flags().StringArrayVar(&langs, "lang", nil, "Recognition language, repeatable (default from config)")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "Rasterization resolution (default from config)")

	return cmd
}
