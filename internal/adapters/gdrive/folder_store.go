package gdrive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"

	"statup/internal/core/domain"
)

// FolderStore implements ports.FolderStore on the Drive v3 API.
type FolderStore struct {
	drive *drive.Service
}

// NewFolderStore creates a folder store backed by the client's Drive
// service.
func NewFolderStore(client *Client) *FolderStore {
	return &FolderStore{drive: client.Drive}
}

// escapeQueryValue escapes single quotes for Drive search queries.
func escapeQueryValue(s string) string {
	return strings.ReplaceAll(s, `'`, `\'`)
}

// FindFolder queries for an exact-name folder, constrained to parentID
// when given. The first match wins; duplicates already present in the
// drive are not reconciled.
func (s *FolderStore) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s'", escapeQueryValue(name), mimeFolder)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	resp, err := s.drive.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing folders named %q: %w", name, err)
	}

	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

// CreateFolder creates the folder and grants each collaborator a writer
// role, one permissions call per address. Grants are not atomic: the
// first failure aborts the rest and propagates, grants already issued
// remain in place.
func (s *FolderStore) CreateFolder(ctx context.Context, name, parentID string, collaborators []string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: mimeFolder,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	folder, err := s.drive.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}

	for _, email := range collaborators {
		permission := &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: email,
		}
		if _, err := s.drive.Permissions.Create(folder.Id, permission).Fields("id").Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("granting write access on %q to %s: %w", name, email, err)
		}
	}

	return folder.Id, nil
}

// ListDocuments returns the rich-text documents inside folderID with
// their last modification time.
func (s *FolderStore) ListDocuments(ctx context.Context, folderID string) ([]domain.DocumentInfo, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s'", folderID, mimeDocument)

	var infos []domain.DocumentInfo
	pageToken := ""
	for {
		call := s.drive.Files.List().
			Q(query).
			Spaces("drive").
			Fields("nextPageToken, files(id, name, modifiedTime)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing documents in folder %s: %w", folderID, err)
		}

		for _, f := range resp.Files {
			info := domain.DocumentInfo{ID: f.Id, Name: f.Name}
			if f.ModifiedTime != "" {
				if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
					info.Modified = t
				}
			}
			infos = append(infos, info)
		}

		if resp.NextPageToken == "" {
			return infos, nil
		}
		pageToken = resp.NextPageToken
	}
}
