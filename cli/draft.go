package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/compose"
	"github.com/wudi/pagekit/export"
	"github.com/wudi/pagekit/genai"
)

// newDraftCmd creates the draft command.
func (a *App) newDraftCmd() *cobra.Command {
	var (
		name string
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "draft <prompt>",
		Short: "Generate a text draft from a prompt",
		Long: `Send the prompt to the configured generation service and lay the
returned markdown out as printable plain text. A failed generation
produces no file; rerun the command to retry.

The service token is read from the environment variable named by
genai.token_env in the configuration (default OPENAI_API_KEY).

Examples:
  pagekit draft "a short cover letter for a plumbing apprenticeship"
  pagekit draft --name letter.txt --raw "meeting notes template"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := genai.NewOpenAI(a.cfg.GenAI.Token(), a.cfg.GenAI.Model, a.cfg.GenAI.BaseURL)
			if err != nil {
				return err
			}
			return a.runDraft(cmd, client, args[0], name, raw)
		},
	}

	cmd.Flags().StringVar(&name, "name", "draft.txt", "Output file name")
	cmd.Flags().BoolVar(&raw, "raw", false, "Keep the markdown instead of laying it out as plain text")

	return cmd
}

func (a *App) runDraft(cmd *cobra.Command, gen genai.Generator, prompt, name string, raw bool) error {
	text, err := gen.GenerateText(cmd.Context(), prompt)
	if err != nil {
		return err
	}
	if !raw {
		if text, err = compose.Render(text); err != nil {
			return fmt.Errorf("laying out draft: %w", err)
		}
	}
	return a.deliver([]export.Artifact{{Name: name, Data: []byte(text)}}, name, "draft")
}
