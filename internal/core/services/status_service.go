package services

import (
	"context"
	"fmt"

	"statup/internal/core/domain"
	"statup/internal/core/ports"
)

// separatorLine divides consecutive status sections inside a report
// document.
const separatorLine = "---------------------------------------"

// StatusService appends status text into report documents, creating
// them on first use.
type StatusService struct {
	docs ports.DocumentStore
}

// NewStatusService creates a new document writing service.
func NewStatusService(docs ports.DocumentStore) *StatusService {
	return &StatusService{docs: docs}
}

// AppendStatusRequest represents a request to write one status section.
type AppendStatusRequest struct {
	FolderID string
	Name     string
	Content  string
}

// AppendStatusResponse represents the response from writing a status.
type AppendStatusResponse struct {
	DocumentID string
	Created    bool
}

// AppendOrCreate writes the content into the named document inside the
// folder. When the document already exists the content is appended as a
// new section behind a separator; otherwise a fresh document is created
// holding just the content.
//
// Appending submits both inserts as one ordered batch with indexes
// computed up front against the pre-batch end offset. The second insert
// targets the original final offset, not the one shifted by the first
// insert, and reordering or recomputing them misplaces the text.
func (s *StatusService) AppendOrCreate(ctx context.Context, req AppendStatusRequest) (*AppendStatusResponse, error) {
	id, err := s.docs.FindDocument(ctx, req.Name, req.FolderID)
	if err != nil {
		return nil, &domain.DocumentWriteError{Name: req.Name, Err: err}
	}

	if id != "" {
		end, err := s.docs.EndIndex(ctx, id)
		if err != nil {
			return nil, &domain.DocumentWriteError{Name: req.Name, Err: err}
		}

		inserts := []domain.TextInsert{
			{Index: end - 1, Text: "\n"},
			{Index: end, Text: "\n" + separatorLine + "\n\n" + req.Content + "\n"},
		}
		if err := s.docs.InsertText(ctx, id, inserts); err != nil {
			return nil, &domain.DocumentWriteError{Name: req.Name, Err: err}
		}
		return &AppendStatusResponse{DocumentID: id}, nil
	}

	id, err = s.docs.CreateDocument(ctx, req.Name, req.FolderID)
	if err != nil {
		return nil, &domain.DocumentWriteError{Name: req.Name, Err: err}
	}

	// Index 1 is the first content position in the provider's 1-based
	// addressing.
	inserts := []domain.TextInsert{{Index: 1, Text: req.Content + "\n"}}
	if err := s.docs.InsertText(ctx, id, inserts); err != nil {
		return nil, &domain.DocumentWriteError{Name: req.Name, Err: err}
	}

	return &AppendStatusResponse{DocumentID: id, Created: true}, nil
}

// Find looks up a document by exact name inside a folder. Returns an
// empty ID when absent.
func (s *StatusService) Find(ctx context.Context, name, folderID string) (string, error) {
	id, err := s.docs.FindDocument(ctx, name, folderID)
	if err != nil {
		return "", fmt.Errorf("failed to look up document %q: %w", name, err)
	}
	return id, nil
}
