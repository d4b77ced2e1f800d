package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statup/pkg/credentials"
	"statup/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your statup setup",
	Long: `Diagnose issues with your statup setup.

Checks for:
  - Configuration file and configured profiles
  - Service account credentials (file or environment)
  - Authentication against the storage provider`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 statup doctor"))
	fmt.Println()

	checkStep("Config File", func() error {
		if _, err := os.Stat(appPaths.ConfigFile); os.IsNotExist(err) {
			return fmt.Errorf("not found at %s (defaults apply)", appPaths.ConfigFile)
		}
		return nil
	})

	checkStep("Profiles", func() error {
		return appConfig.Validate()
	})

	checkStep("Credentials", func() error {
		if _, err := os.Stat(appPaths.CredentialsFile); err == nil {
			_, err := credentials.LoadFile(appPaths.CredentialsFile)
			return err
		}
		_, err := credentials.FromEnv()
		return err
	})

	checkStep("Authentication", func() error {
		ctx := getContext()
		client, err := connect(ctx)
		if err != nil {
			return err
		}
		// A cheap authenticated round trip proves the credential works.
		_, err = client.Drive.About.Get().Fields("user").Context(ctx).Do()
		return err
	})

	if len(appConfig.Collaborators) > 0 {
		fmt.Println()
		fmt.Println(ui.FormatInfo(fmt.Sprintf("%d collaborator(s) will be granted access when the root folder is first created", len(appConfig.Collaborators))))
	}
}

func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
	} else {
		fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
