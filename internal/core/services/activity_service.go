package services

import (
	"context"
	"fmt"

	"statup/internal/core/ports"
)

// ActivityService counts recorded report documents per profile.
type ActivityService struct {
	folders    ports.FolderStore
	rootFolder string
}

// NewActivityService creates a new activity counting service.
func NewActivityService(folders ports.FolderStore, rootFolder string) *ActivityService {
	return &ActivityService{folders: folders, rootFolder: rootFolder}
}

// ProfileActivity is the document count for one profile.
type ProfileActivity struct {
	Profile   string
	Documents int
}

// ActivityRequest represents a request for per-profile activity.
type ActivityRequest struct {
	Profiles []string
}

// ActivityResponse represents per-profile document counts, in the order
// the profiles were requested.
type ActivityResponse struct {
	Activity []ProfileActivity
	Total    int
}

// Execute counts documents under each profile folder. Profiles without
// a folder yet count as zero.
func (s *ActivityService) Execute(ctx context.Context, req ActivityRequest) (*ActivityResponse, error) {
	rootID, err := s.folders.FindFolder(ctx, s.rootFolder, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up folder %q: %w", s.rootFolder, err)
	}

	resp := &ActivityResponse{}
	for _, profile := range req.Profiles {
		activity := ProfileActivity{Profile: profile}

		if rootID != "" {
			profileID, err := s.folders.FindFolder(ctx, profile, rootID)
			if err != nil {
				return nil, fmt.Errorf("failed to look up folder %q: %w", profile, err)
			}
			if profileID != "" {
				docs, err := s.folders.ListDocuments(ctx, profileID)
				if err != nil {
					return nil, fmt.Errorf("failed to list documents for %q: %w", profile, err)
				}
				activity.Documents = len(docs)
			}
		}

		resp.Activity = append(resp.Activity, activity)
		resp.Total += activity.Documents
	}

	return resp, nil
}
