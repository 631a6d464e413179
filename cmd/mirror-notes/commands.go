package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the saved note titles with their positions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			for i, title := range core.Notes.Titles() {
				fmt.Fprintf(out, "%d\t%s\n", i, title)
			}
			return nil
		},
	}
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Print one note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}

			core, err := c.core(cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			note, err := core.Notes.Select(index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", note.Title, note.Content)
			return nil
		},
	}
}

func newAddCmd(c *cli) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a note.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			index, err := core.Notes.Save(cmd.Context(), title, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved note %d\n", index)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note content")
	return cmd
}

func newAskCmd(c *cli) *cobra.Command {
	var noteIndex int
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the model about your notes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			var title, content string
			if noteIndex >= 0 {
				note, err := core.Notes.Select(noteIndex)
				if err != nil {
					return err
				}
				title, content = note.Title, note.Content
			}

			answer, err := core.Assistant.Ask(cmd.Context(), strings.Join(args, " "), title, content)
			if err != nil {
				return err
			}

			if !raw {
				answer = renderMarkdown(answer)
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().IntVarP(&noteIndex, "note", "n", -1, "position of the note to use as the current note")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without terminal formatting")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <glob>...",
		Short: "Import markdown files as notes. Patterns support **.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			result, err := core.Importer.Import(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range result.Skipped {
				fmt.Fprintf(out, "skipped %s: %v\n", s.Path, s.Err)
			}
			fmt.Fprintf(out, "imported %d notes\n", len(result.Imported))
			return nil
		},
	}
}

// renderMarkdown falls back to the plain answer when rendering fails.
func renderMarkdown(answer string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return answer
	}
	rendered, err := renderer.Render(answer)
	if err != nil {
		return answer
	}
	return strings.TrimRight(rendered, "\n")
}
