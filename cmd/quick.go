package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"statup/internal/core/domain"
	"statup/internal/core/services"
	"statup/pkg/ui"
)

var (
	quickType    string
	quickProfile string
	quickDate    string
	quickStart   string
	quickEnd     string
	quickMessage string
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Submit a status without the interactive form",
	Long: `Submit a status update directly from flags.

The date defaults to today for daily statuses. Use -m - to read the
status text from stdin. With no -p flag the profile is picked with a
fuzzy finder.

Examples:
  statup quick -m "Shipped the exporter, reviewing PRs tomorrow"
  statup quick -t Weekly -s 2024-01-01 -e 2024-01-07 -m - < weekly.txt
  statup quick -p acme -d 2024-05-01 -m "Backfilled the reports"`,
	RunE: runQuick,
}

func init() {
	quickCmd.Flags().StringVarP(&quickType, "type", "t", "Daily", "Status type (Daily or Weekly)")
	quickCmd.Flags().StringVarP(&quickProfile, "profile", "p", "", "Profile to record the status under")
	quickCmd.Flags().StringVarP(&quickDate, "date", "d", "", "Date for a daily status (YYYY-MM-DD, default today)")
	quickCmd.Flags().StringVarP(&quickStart, "start", "s", "", "Start date for a weekly status (YYYY-MM-DD)")
	quickCmd.Flags().StringVarP(&quickEnd, "end", "e", "", "End date for a weekly status (YYYY-MM-DD)")
	quickCmd.Flags().StringVarP(&quickMessage, "message", "m", "", "Status text (use - to read stdin)")
}

func runQuick(cmd *cobra.Command, args []string) error {
	if err := appConfig.Validate(); err != nil {
		return err
	}

	content := quickMessage
	if content == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read status from stdin: %w", err)
		}
		content = string(data)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("status cannot be empty")
	}

	period, err := quickPeriod()
	if err != nil {
		return err
	}

	profile, err := selectProfile(quickProfile)
	if err != nil {
		return err
	}

	ctx := getContext()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	resp, err := newSubmitService(client).Execute(ctx, services.SubmitRequest{
		Profile: profile,
		Period:  period,
		Content: content,
	})
	if err != nil {
		return err
	}

	if resp.CreatedDocument {
		fmt.Println(ui.FormatSuccess("Status saved to new document " + resp.FileName))
	} else {
		fmt.Println(ui.FormatSuccess("Status appended to " + resp.FileName))
	}
	fmt.Println(ui.FormatMuted(resp.DocumentURL))
	return nil
}

func quickPeriod() (domain.Period, error) {
	switch domain.StatusType(quickType) {
	case domain.StatusWeekly:
		start, err := time.Parse(domain.DateFormat, quickStart)
		if err != nil {
			return domain.Period{}, fmt.Errorf("weekly status needs --start (YYYY-MM-DD)")
		}
		end, err := time.Parse(domain.DateFormat, quickEnd)
		if err != nil {
			return domain.Period{}, fmt.Errorf("weekly status needs --end (YYYY-MM-DD)")
		}
		return domain.NewWeeklyPeriod(start, end)

	case domain.StatusDaily:
		if quickDate == "" {
			return domain.NewDailyPeriod(time.Now())
		}
		date, err := time.Parse(domain.DateFormat, quickDate)
		if err != nil {
			return domain.Period{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", quickDate)
		}
		return domain.NewDailyPeriod(date)

	default:
		return domain.Period{}, fmt.Errorf("unknown status type %q (Daily or Weekly)", quickType)
	}
}

// selectProfile validates an explicit profile against the configured
// list, or lets the user pick one interactively.
func selectProfile(explicit string) (string, error) {
	profiles := appConfig.Profiles

	if explicit != "" {
		for _, p := range profiles {
			if p == explicit {
				return p, nil
			}
		}
		return "", fmt.Errorf("unknown profile %q (configured: %s)", explicit, strings.Join(profiles, ", "))
	}

	if len(profiles) == 1 {
		return profiles[0], nil
	}

	idx, err := fuzzyfinder.Find(
		profiles,
		func(i int) string {
			return profiles[i]
		},
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return "", fmt.Errorf("no profile selected")
	}
	return profiles[idx], nil
}
