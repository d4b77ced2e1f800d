package gdrive

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"statup/internal/core/domain"
)

// Authorization scopes: full file access plus document editing.
const (
	scopeDrive     = "https://www.googleapis.com/auth/drive"
	scopeDocuments = "https://www.googleapis.com/auth/documents"
)

// Provider mime types.
const (
	mimeFolder   = "application/vnd.google-apps.folder"
	mimeDocument = "application/vnd.google-apps.document"
)

// Client bundles the Drive and Docs services authenticated from a single
// service-account credential.
type Client struct {
	Drive *drive.Service
	Docs  *docs.Service
}

// NewClient exchanges the service-account credential JSON for an
// authenticated client. A credential the JWT flow cannot parse, or one
// the provider rejects, surfaces as an AuthenticationError.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, scopeDrive, scopeDocuments)
	if err != nil {
		return nil, &domain.AuthenticationError{Err: fmt.Errorf("parsing service account credentials: %w", err)}
	}

	// One HTTP client backs both services.
	httpClient := config.Client(ctx)

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, &domain.AuthenticationError{Err: fmt.Errorf("creating drive service: %w", err)}
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, &domain.AuthenticationError{Err: fmt.Errorf("creating docs service: %w", err)}
	}

	return &Client{Drive: driveService, Docs: docsService}, nil
}
