package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"statup/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the statup configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appPaths.ConfigFile

		// First run: write the defaults so there is something to edit.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := appConfig.Save(path); err != nil {
				return err
			}
			fmt.Println(ui.FormatInfo("Created config: " + path))
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := appConfig.Editor
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
