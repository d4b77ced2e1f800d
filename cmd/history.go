package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"statup/internal/adapters/gdrive"
	"statup/internal/core/services"
	"statup/pkg/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history [profile]",
	Short: "List the status documents recorded for a profile",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := appConfig.Validate(); err != nil {
		return err
	}

	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	profile, err := selectProfile(explicit)
	if err != nil {
		return err
	}

	ctx := getContext()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	service := services.NewHistoryService(gdrive.NewFolderStore(client), appConfig.RootFolder)
	resp, err := service.Execute(ctx, services.HistoryRequest{Profile: profile})
	if err != nil {
		return err
	}

	if len(resp.Documents) == 0 {
		fmt.Println(ui.FormatInfo("No status documents recorded for " + profile + " yet"))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "DOCUMENT", Width: 28},
		{Header: "LAST UPDATED", Width: 16},
	})
	for _, doc := range resp.Documents {
		modified := ""
		if !doc.Modified.IsZero() {
			modified = doc.Modified.Format(appConfig.DisplayDateFormat)
		}
		table.AddRow([]string{doc.Name, modified})
	}

	fmt.Println(ui.FormatTitle(profile))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d document(s)", len(resp.Documents))))
	return nil
}
