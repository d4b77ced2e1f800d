package ports

import (
	"context"

	"statup/internal/core/domain"
)

// FolderStore defines the port for folder and permission operations
// against the storage provider.
type FolderStore interface {
	// FindFolder returns the ID of the first folder with the exact name
	// under parentID (the provider root when empty), or "" when none
	// exists. Side-effect free; duplicate folders are not reconciled.
	FindFolder(ctx context.Context, name, parentID string) (string, error)

	// CreateFolder creates a folder under parentID and grants each
	// collaborator write access, one provider call per address. Grants
	// are not atomic: a failing grant aborts the remainder and its error
	// propagates, while already-issued grants stand.
	CreateFolder(ctx context.Context, name, parentID string, collaborators []string) (string, error)

	// ListDocuments returns the rich-text documents inside folderID.
	ListDocuments(ctx context.Context, folderID string) ([]domain.DocumentInfo, error)
}

// DocumentStore defines the port for rich-document content operations.
type DocumentStore interface {
	// FindDocument returns the ID of the first document with the exact
	// name inside folderID, or "" when none exists.
	FindDocument(ctx context.Context, name, folderID string) (string, error)

	// CreateDocument creates an empty document named name inside folderID.
	CreateDocument(ctx context.Context, name, folderID string) (string, error)

	// EndIndex returns the end offset of the document's content stream.
	EndIndex(ctx context.Context, documentID string) (int64, error)

	// InsertText applies the inserts as a single ordered batch. Every
	// index refers to the document state before the batch.
	InsertText(ctx context.Context, documentID string, inserts []domain.TextInsert) error
}
