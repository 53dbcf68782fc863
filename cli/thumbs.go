package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/export"
)

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newThumbsCmd creates the thumbs command.
func (a *App) newThumbsCmd() *cobra.Command {
	var (
		limit int
		width int
	)

	cmd := &cobra.Command{
		Use:   "thumbs <file>",
		Short: "Render page thumbnails as JPEG previews",
		Long: `Render a capped number of page previews at thumbnail resolution.
Documents longer than the cap get previews for the leading pages only.

Examples:
  pagekit thumbs report.pdf
  pagekit thumbs --limit 10 --width 400 report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit > 0 {
				a.cfg.Loader.ThumbnailLimit = limit
			}
			if width > 0 {
				a.cfg.Loader.ThumbnailWidth = width
			}
			w := a.newSession()
			if err := a.loadFile(cmd.Context(), w, args[0]); err != nil {
				return err
			}

			doc := w.Document()
			artifacts := make([]export.Artifact, len(doc.Thumbnails))
			for i, th := range doc.Thumbnails {
				artifacts[i] = export.Artifact{
					Name: fmt.Sprintf("%s_page_%03d.jpg", baseName(args[0]), th.Index+1),
					Data: th.JPEG,
				}
			}
			if len(artifacts) == 0 {
				return fmt.Errorf("%s has no pages to preview", args[0])
			}
			return a.deliver(artifacts, args[0], "thumbs")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of thumbnails (default from config)")
	cmd.Flags().IntVar(&width, "width", 0, "Thumbnail width in pixels (default from config)")

	return cmd
}
