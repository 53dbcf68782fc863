package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/codec"
	"github.com/wudi/pagekit/pipeline"
	"github.com/wudi/pagekit/workspace"
)

// newMergeCmd creates the merge command.
func (a *App) newMergeCmd() *cobra.Command {
	var (
		numbered bool
		anchor   string
		fontSize float64
		margin   float64
	)

	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Concatenate documents into one, optionally numbering the pages",
		Long: `Concatenate the given documents, in argument order, into a single
document. With --numbered, every page of the result is stamped
"Page N of Total" over the merged sequence.

Examples:
  pagekit merge a.pdf b.pdf c.pdf
  pagekit merge --numbered --anchor bottom-right a.pdf b.pdf`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.newSession()
			for _, path := range args {
				if err := a.enqueue(w, path); err != nil {
					return err
				}
			}

			numbering := pipeline.NumberingSpec{
				Enabled:  numbered,
				FontSize: fontSize,
				Margin:   margin,
			}
			if numbered {
				if anchor == "" {
					anchor = a.cfg.Numbering.Anchor
				}
				anc, err := codec.ParseAnchor(anchor)
				if err != nil {
					return err
				}
				numbering.Anchor = anc
				if numbering.FontSize == 0 {
					numbering.FontSize = a.cfg.Numbering.FontSize
				}
				if numbering.Margin == 0 {
					numbering.Margin = a.cfg.Numbering.Margin
				}
			}

			job, err := w.MergeJob(numbering)
			if err != nil {
				return err
			}
			artifacts, err := w.Run(cmd.Context(), job, a.progress())
			if err != nil {
				return err
			}
			return a.deliver(artifacts, args[0], "merged")
		},
	}

	cmd.Flags().BoolVar(&numbered, "numbered", false, "Stamp page numbers onto the result")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Numbering position, e.g. bottom-center (default from config)")
	cmd.Flags().Float64Var(&fontSize, "font-size", 0, "Numbering font size in points (default from config)")
	cmd.Flags().Float64Var(&margin, "margin", 0, "Numbering page-edge margin in points (default from config)")

	return cmd
}

// newExtractCmd creates the extract command.
func (a *App) newExtractCmd() *cobra.Command {
	var pages string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Copy selected pages into a new document",
		Long: `Copy the pages named by --pages, in ascending order, into a new
document. The range expression is 1-based: "1-3, 7" selects pages
one through three and seven.

Examples:
  pagekit extract --pages 1-3,7 report.pdf
  pagekit extract --pages 5 report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openSelected(cmd, args[0], pages)
			if err != nil {
				return err
			}
			job, err := w.ExtractJob()
			if err != nil {
				return err
			}
			artifacts, err := w.Run(cmd.Context(), job, a.progress())
			if err != nil {
				return err
			}
			return a.deliver(artifacts, args[0], "extracted")
		},
	}

	cmd.Flags().StringVarP(&pages, "pages", "p", "", "Pages to extract, e.g. \"1-3, 7\" (default: all)")

	return cmd
}

// newBurstCmd creates the burst command.
func (a *App) newBurstCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "burst <file>",
		Short: "Split a document into one file per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.newSession()
			if err := a.loadFile(cmd.Context(), w, args[0]); err != nil {
				return err
			}
			job, err := w.BurstJob()
			if err != nil {
				return err
			}
			artifacts, err := w.Run(cmd.Context(), job, a.progress())
			if err != nil {
				return err
			}
			return a.deliver(artifacts, args[0], "burst")
		},
	}
}

// newRotateCmd creates the rotate command.
func (a *App) newRotateCmd() *cobra.Command {
	var (
		pages   string
		degrees int
	)

	cmd := &cobra.Command{
		Use:   "rotate <file>",
		Short: "Rotate selected pages in place",
		Long: `Add --degrees to the rotation of every selected page, leaving the
rest of the document untouched. The angle must be a non-zero
multiple of 90; negative angles rotate counter-clockwise.

Examples:
  pagekit rotate --degrees 90 scan.pdf
  pagekit rotate --degrees -90 --pages 2-4 scan.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openSelected(cmd, args[0], pages)
			if err != nil {
				return err
			}
			job, err := w.RotateJob(degrees)
			if err != nil {
				return err
			}
			artifacts, err := w.Run(cmd.Context(), job, a.progress())
			if err != nil {
				return err
			}
			return a.deliver(artifacts, args[0], "rotated")
		},
	}

	cmd.Flags().StringVarP(&pages, "pages", "p", "", "Pages to rotate, e.g. \"1-3, 7\" (default: all)")
	cmd.Flags().IntVarP(&degrees, "degrees", "d", 90, "Rotation angle, a non-zero multiple of 90")

	return cmd
}

// openSelected loads path into a fresh session and applies the page
// selection, selecting everything when the expression is empty.
func (a *App) openSelected(cmd *cobra.Command, path, pages string) (*workspace.Workspace, error) {
	w := a.newSession()
	if err := a.loadFile(cmd.Context(), w, path); err != nil {
		return nil, err
	}
	if pages == "" {
		w.Selection().SelectAll()
	} else {
		w.Selection().SetText(pages)
		if w.Selection().Count() == 0 {
			return nil, fmt.Errorf("%q selects no pages of %s", pages, path)
		}
	}
	return w, nil
}
