package services

import (
	"context"
	"fmt"
	"sort"

	"statup/internal/core/domain"
	"statup/internal/core/ports"
)

// HistoryService lists the report documents already recorded for a
// profile. It only reads; missing folders yield an empty history rather
// than getting created.
type HistoryService struct {
	folders    ports.FolderStore
	rootFolder string
}

// NewHistoryService creates a new history listing service.
func NewHistoryService(folders ports.FolderStore, rootFolder string) *HistoryService {
	return &HistoryService{folders: folders, rootFolder: rootFolder}
}

// HistoryRequest represents a request for a profile's report history.
type HistoryRequest struct {
	Profile string
}

// HistoryResponse represents a profile's report history, newest first.
type HistoryResponse struct {
	Documents []domain.DocumentInfo
}

// Execute lists the documents under the profile's folder.
func (s *HistoryService) Execute(ctx context.Context, req HistoryRequest) (*HistoryResponse, error) {
	if req.Profile == "" {
		return nil, fmt.Errorf("no profile selected")
	}

	rootID, err := s.folders.FindFolder(ctx, s.rootFolder, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up folder %q: %w", s.rootFolder, err)
	}
	if rootID == "" {
		return &HistoryResponse{}, nil
	}

	profileID, err := s.folders.FindFolder(ctx, req.Profile, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up folder %q: %w", req.Profile, err)
	}
	if profileID == "" {
		return &HistoryResponse{}, nil
	}

	docs, err := s.folders.ListDocuments(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for %q: %w", req.Profile, err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Modified.After(docs[j].Modified)
	})

	return &HistoryResponse{Documents: docs}, nil
}
