package main

import (
	"fmt"
	"io"
	"os"

	"github.com/baselens/baselens/internal/notes"
	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage locally saved notes and theme preference",
}

var notesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := notes.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		text, err := store.Notes()
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Println("(no notes saved)")
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

var notesSaveCmd = &cobra.Command{
	Use:   "save [text]",
	Short: "Save notes (reads stdin when no text is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) > 0 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		store, err := notes.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveNotes(text); err != nil {
			return err
		}
		fmt.Println("Notes saved.")
		return nil
	},
}

var notesThemeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := notes.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			theme, err := store.Theme()
			if err != nil {
				return err
			}
			if theme == "" {
				theme = "(unset)"
			}
			fmt.Println(theme)
			return nil
		}

		if err := store.SaveTheme(args[0]); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s.\n", args[0])
		return nil
	},
}

func init() {
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesSaveCmd)
	notesCmd.AddCommand(notesThemeCmd)
	rootCmd.AddCommand(notesCmd)
}
