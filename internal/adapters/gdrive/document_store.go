package gdrive

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"

	"statup/internal/core/domain"
)

// DocumentStore implements ports.DocumentStore. Lookup and creation go
// through the Drive API, content edits through the Docs API.
type DocumentStore struct {
	drive *drive.Service
	docs  *docs.Service
}

// NewDocumentStore creates a document store backed by the client.
func NewDocumentStore(client *Client) *DocumentStore {
	return &DocumentStore{drive: client.Drive, docs: client.Docs}
}

// FindDocument queries for an exact-name document inside folderID. The
// first match wins.
func (s *DocumentStore) FindDocument(ctx context.Context, name, folderID string) (string, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and mimeType='%s'",
		escapeQueryValue(name), folderID, mimeDocument)

	resp, err := s.drive.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id)").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing documents named %q: %w", name, err)
	}

	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

// CreateDocument creates an empty document named name inside folderID.
func (s *DocumentStore) CreateDocument(ctx context.Context, name, folderID string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: mimeDocument,
		Parents:  []string{folderID},
	}

	file, err := s.drive.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating document %q: %w", name, err)
	}
	return file.Id, nil
}

// EndIndex returns the end offset of the document's last structural
// element, which is the end of its content stream.
func (s *DocumentStore) EndIndex(ctx context.Context, documentID string) (int64, error) {
	doc, err := s.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("fetching document %s: %w", documentID, err)
	}
	if doc.Body == nil || len(doc.Body.Content) == 0 {
		return 0, fmt.Errorf("document %s has no body content", documentID)
	}

	last := doc.Body.Content[len(doc.Body.Content)-1]
	return last.EndIndex, nil
}

// InsertText submits the inserts as one ordered batchUpdate so the
// provider applies them atomically in sequence.
func (s *DocumentStore) InsertText(ctx context.Context, documentID string, inserts []domain.TextInsert) error {
	requests := make([]*docs.Request, 0, len(inserts))
	for _, ins := range inserts {
		requests = append(requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: ins.Index},
				Text:     ins.Text,
			},
		})
	}

	_, err := s.docs.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating document %s: %w", documentID, err)
	}
	return nil
}
