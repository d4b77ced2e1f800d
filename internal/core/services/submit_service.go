package services

import (
	"context"
	"fmt"

	"statup/internal/core/domain"
)

// SubmitService drives the full submission chain: resolve the root
// status folder, resolve the profile subfolder, derive the report file
// name, and append or create the document. It performs no retries and
// reconciles no partial state; a folder created before a later step
// fails simply gets found on the next attempt.
type SubmitService struct {
	folders       *FolderService
	status        *StatusService
	rootFolder    string
	collaborators []string
}

// NewSubmitService creates the submission controller service.
// Collaborators receive write grants only when the root folder is first
// created.
func NewSubmitService(folders *FolderService, status *StatusService, rootFolder string, collaborators []string) *SubmitService {
	return &SubmitService{
		folders:       folders,
		status:        status,
		rootFolder:    rootFolder,
		collaborators: collaborators,
	}
}

// SubmitRequest represents one status submission.
type SubmitRequest struct {
	Profile string
	Period  domain.Period
	Content string
}

// SubmitResponse represents a completed submission.
type SubmitResponse struct {
	FileName        string
	DocumentID      string
	DocumentURL     string
	CreatedDocument bool
}

// Execute validates the entry and runs the sequential submission chain.
// Validation failures surface before any remote call is made.
func (s *SubmitService) Execute(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	entry := domain.Entry{Profile: req.Profile, Period: req.Period, Content: req.Content}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	root, err := s.folders.Resolve(ctx, ResolveFolderRequest{
		Name:          s.rootFolder,
		Collaborators: s.collaborators,
	})
	if err != nil {
		return nil, err
	}

	profile, err := s.folders.Resolve(ctx, ResolveFolderRequest{
		Name:     req.Profile,
		ParentID: root.FolderID,
	})
	if err != nil {
		return nil, err
	}

	name := req.Period.FileName()
	written, err := s.status.AppendOrCreate(ctx, AppendStatusRequest{
		FolderID: profile.FolderID,
		Name:     name,
		Content:  req.Content,
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResponse{
		FileName:        name,
		DocumentID:      written.DocumentID,
		DocumentURL:     DocumentURL(written.DocumentID),
		CreatedDocument: written.Created,
	}, nil
}

// DocumentURL returns the editor URL for a document ID.
func DocumentURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", id)
}
