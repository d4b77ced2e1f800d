package cmd

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"statup/internal/adapters/gdrive"
	"statup/internal/core/services"
	"statup/pkg/ui"
)

var statsOut string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded status documents per profile",
	Long: `Count the status documents recorded under each configured profile.

With --out, an interactive HTML bar chart is written alongside the
terminal summary.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsOut, "out", "o", "", "Write an HTML bar chart to this file")
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := appConfig.Validate(); err != nil {
		return err
	}

	ctx := getContext()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	service := services.NewActivityService(gdrive.NewFolderStore(client), appConfig.RootFolder)
	resp, err := service.Execute(ctx, services.ActivityRequest{Profiles: appConfig.Profiles})
	if err != nil {
		return err
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "PROFILE", Width: 20},
		{Header: "DOCUMENTS", Width: 10, Align: "right"},
	})
	for _, a := range resp.Activity {
		table.AddRow([]string{a.Profile, fmt.Sprintf("%d", a.Documents)})
	}

	fmt.Println(ui.FormatTitle("Status activity"))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d document(s) total", resp.Total)))

	if statsOut != "" {
		if err := writeActivityChart(resp, statsOut); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Chart written to " + statsOut))
	}
	return nil
}

func writeActivityChart(resp *services.ActivityResponse, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Status activity",
			Subtitle: "Recorded status documents per profile",
		}),
	)

	names := make([]string, 0, len(resp.Activity))
	values := make([]opts.BarData, 0, len(resp.Activity))
	for _, a := range resp.Activity {
		names = append(names, a.Profile)
		values = append(values, opts.BarData{Value: a.Documents})
	}
	bar.SetXAxis(names).AddSeries("Documents", values)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
