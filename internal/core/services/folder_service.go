package services

import (
	"context"
	"fmt"

	"statup/internal/core/ports"
)

// FolderService resolves provider folders by name with a find-or-create
// policy.
type FolderService struct {
	folders ports.FolderStore
}

// NewFolderService creates a new folder resolution service.
func NewFolderService(folders ports.FolderStore) *FolderService {
	return &FolderService{folders: folders}
}

// ResolveFolderRequest represents a request to find or create a folder.
type ResolveFolderRequest struct {
	Name     string
	ParentID string
	// Collaborators are granted write access only when the folder is
	// created by this call, never when an existing one is found.
	Collaborators []string
}

// ResolveFolderResponse represents the response from resolving a folder.
type ResolveFolderResponse struct {
	FolderID string
	Created  bool
}

// Resolve finds a folder by exact name under the parent scope, creating
// it when absent. The lookup and create are not serialized against other
// processes, so two racing callers can still produce duplicates; within
// one process the sequence is find-then-create and never duplicates.
func (s *FolderService) Resolve(ctx context.Context, req ResolveFolderRequest) (*ResolveFolderResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}

	id, err := s.folders.FindFolder(ctx, req.Name, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up folder %q: %w", req.Name, err)
	}
	if id != "" {
		return &ResolveFolderResponse{FolderID: id}, nil
	}

	id, err = s.folders.CreateFolder(ctx, req.Name, req.ParentID, req.Collaborators)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder %q: %w", req.Name, err)
	}

	return &ResolveFolderResponse{FolderID: id, Created: true}, nil
}

// Find looks a folder up without creating it. Returns an empty ID when
// the folder does not exist.
func (s *FolderService) Find(ctx context.Context, name, parentID string) (string, error) {
	id, err := s.folders.FindFolder(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q: %w", name, err)
	}
	return id, nil
}
