package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statup/internal/adapters/gdrive"
	"statup/internal/core/services"
	"statup/pkg/config"
	"statup/pkg/credentials"
	"statup/pkg/paths"
	"statup/pkg/ui"
)

var (
	appPaths  *paths.Paths
	appConfig *config.Config
)

// rootCmd represents the base command; without a subcommand it launches
// the interactive status form.
var rootCmd = &cobra.Command{
	Use:   "statup",
	Short: "Record daily and weekly status updates to Google Drive",
	Long: ui.StyleTitle.Render("statup") + " - Status Manager\n\n" +
		"Records periodic status updates as sections appended to Google Docs,\n" +
		"organized under one folder per profile.",
	PersistentPreRunE: initializeApp,
	RunE:              runForm,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp resolves paths and loads configuration. Authentication
// happens per submission, not here.
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to resolve application paths: %w", err)
	}
	appPaths = p

	if err := appPaths.EnsureData(); err != nil {
		return err
	}

	cfg, err := config.Load(appPaths.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	if cfg.CredentialsFile != "" {
		appPaths.CredentialsFile = cfg.CredentialsFile
	}

	ui.SetTheme(cfg.ColorTheme)

	return nil
}

// connect loads the credential material and exchanges it for an
// authenticated client. Called once per logical operation sequence; no
// handle is pooled between submissions.
func connect(ctx context.Context) (*gdrive.Client, error) {
	credsJSON, err := credentials.Load(appPaths.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return gdrive.NewClient(ctx, credsJSON)
}

func newSubmitService(client *gdrive.Client) *services.SubmitService {
	return services.NewSubmitService(
		services.NewFolderService(gdrive.NewFolderStore(client)),
		services.NewStatusService(gdrive.NewDocumentStore(client)),
		appConfig.RootFolder,
		appConfig.Collaborators,
	)
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
