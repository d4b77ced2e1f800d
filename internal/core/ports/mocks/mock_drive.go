package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"statup/internal/core/domain"
)

// MockDrive is an in-memory stand-in for the remote folder and document
// stores. It implements both ports.FolderStore and ports.DocumentStore
// the way a single authenticated client backs both in production.
type MockDrive struct {
	mu      sync.Mutex
	folders map[string]*mockFolder
	docs    map[string]*mockDocument
	nextID  int

	// Grants records collaborator emails granted per folder ID, in
	// the order the grant calls were issued.
	Grants map[string][]string

	// Failure injection for tests.
	FailGrantTo      string // grant to this email fails
	FailCreateFolder bool
	FailEndIndex     bool
	FailInsert       bool
	FailList         bool

	// WriteCalls counts every mutating provider call: folder creates,
	// permission grants, document creates, and batch inserts.
	WriteCalls int
}

type mockFolder struct {
	id       string
	name     string
	parentID string
}

type mockDocument struct {
	id       string
	name     string
	folderID string
	// text models the document body including its trailing implicit
	// newline, addressed 1-based like the provider does.
	text     string
	modified time.Time
}

// NewMockDrive creates an empty mock store.
func NewMockDrive() *MockDrive {
	return &MockDrive{
		folders: make(map[string]*mockFolder),
		docs:    make(map[string]*mockDocument),
		Grants:  make(map[string][]string),
	}
}

func (m *MockDrive) newID(kind string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", kind, m.nextID)
}

// FindFolder returns the first folder matching name under parentID.
func (m *MockDrive) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.folders {
		if f.name == name && f.parentID == parentID {
			return f.id, nil
		}
	}
	return "", nil
}

// CreateFolder creates a folder and grants each collaborator in order.
func (m *MockDrive) CreateFolder(ctx context.Context, name, parentID string, collaborators []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreateFolder {
		return "", fmt.Errorf("folders.create: backend error")
	}

	f := &mockFolder{id: m.newID("folder"), name: name, parentID: parentID}
	m.folders[f.id] = f
	m.WriteCalls++

	for _, email := range collaborators {
		if email == m.FailGrantTo {
			// Prior grants stand; nothing is rolled back.
			return "", fmt.Errorf("permissions.create for %s: backend error", email)
		}
		m.Grants[f.id] = append(m.Grants[f.id], email)
		m.WriteCalls++
	}

	return f.id, nil
}

// ListDocuments returns the documents inside folderID.
func (m *MockDrive) ListDocuments(ctx context.Context, folderID string) ([]domain.DocumentInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailList {
		return nil, fmt.Errorf("files.list: backend error")
	}

	var infos []domain.DocumentInfo
	for _, d := range m.docs {
		if d.folderID == folderID {
			infos = append(infos, domain.DocumentInfo{ID: d.id, Name: d.name, Modified: d.modified})
		}
	}
	return infos, nil
}

// FindDocument returns the first document matching name in folderID.
func (m *MockDrive) FindDocument(ctx context.Context, name, folderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.docs {
		if d.name == name && d.folderID == folderID {
			return d.id, nil
		}
	}
	return "", nil
}

// CreateDocument creates an empty document. A fresh document holds only
// the implicit trailing newline, so its end index is 2.
func (m *MockDrive) CreateDocument(ctx context.Context, name, folderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := &mockDocument{
		id:       m.newID("doc"),
		name:     name,
		folderID: folderID,
		text:     "\n",
		modified: time.Now(),
	}
	m.docs[d.id] = d
	m.WriteCalls++
	return d.id, nil
}

// EndIndex returns the end offset of the document body.
func (m *MockDrive) EndIndex(ctx context.Context, documentID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailEndIndex {
		return 0, fmt.Errorf("documents.get: backend error")
	}
	d, ok := m.docs[documentID]
	if !ok {
		return 0, fmt.Errorf("document %s not found", documentID)
	}
	return int64(len(d.text)) + 1, nil
}

// InsertText applies a batch of inserts whose indexes all refer to the
// pre-batch document state, shifting later inserts by the text earlier
// ones added at or before their position.
func (m *MockDrive) InsertText(ctx context.Context, documentID string, inserts []domain.TextInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInsert {
		return fmt.Errorf("documents.batchUpdate: backend error")
	}
	d, ok := m.docs[documentID]
	if !ok {
		return fmt.Errorf("document %s not found", documentID)
	}

	type applied struct{ pos, n int }
	var done []applied
	text := d.text

	for _, ins := range inserts {
		pos := int(ins.Index) - 1
		if pos < 0 || pos > len(d.text) {
			return fmt.Errorf("insert index %d out of range", ins.Index)
		}
		shift := 0
		for _, a := range done {
			if a.pos <= pos {
				shift += a.n
			}
		}
		at := pos + shift
		text = text[:at] + ins.Text + text[at:]
		done = append(done, applied{pos: pos, n: len(ins.Text)})
	}

	d.text = text
	d.modified = time.Now()
	m.WriteCalls++
	return nil
}

// DocumentText returns the body of the named document in folderID, or ""
// when it does not exist.
func (m *MockDrive) DocumentText(name, folderID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.docs {
		if d.name == name && d.folderID == folderID {
			return d.text
		}
	}
	return ""
}

// FolderCount returns how many folders with the given name exist under
// parentID.
func (m *MockDrive) FolderCount(name, parentID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, f := range m.folders {
		if f.name == name && f.parentID == parentID {
			n++
		}
	}
	return n
}

// AddDocument seeds a document with the given body text for tests. The
// text should end with the implicit trailing newline.
func (m *MockDrive) AddDocument(name, folderID, text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := &mockDocument{
		id:       m.newID("doc"),
		name:     name,
		folderID: folderID,
		text:     text,
		modified: time.Now(),
	}
	m.docs[d.id] = d
	return d.id
}

// AddFolder seeds a folder for tests.
func (m *MockDrive) AddFolder(name, parentID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := &mockFolder{id: m.newID("folder"), name: name, parentID: parentID}
	m.folders[f.id] = f
	return f.id
}
