// Package memory tracks the documents the client currently has open.
// Each edit produces a fresh immutable snapshot; requests in flight keep
// whatever snapshot they started with.
package memory

import (
	"fmt"
	"sync"

	"marklink/internal/document"
)

// Change is one content change from the client. A nil Range replaces the
// whole document.
type Change struct {
	Range *document.Range
	Text  string
}

// Manager holds open documents keyed by URI.
type Manager struct {
	mu   sync.RWMutex
	docs map[string]*document.Document
}

func NewManager() *Manager {
	return &Manager{docs: make(map[string]*document.Document)}
}

// Open registers a document with its full initial content, replacing any
// previous snapshot for the same URI.
func (m *Manager) Open(uri string, content string) *document.Document {
	doc := document.New(uri, content)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[uri] = doc
	return doc
}

// Get returns the current snapshot of an open document.
func (m *Manager) Get(uri string) (*document.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[uri]
	return doc, ok
}

// Apply splices a batch of changes into the document and installs the
// resulting snapshot.
func (m *Manager) Apply(uri string, changes []Change) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document not open: %s", uri)
	}

	for _, change := range changes {
		if change.Range == nil {
			doc = document.New(uri, change.Text)
			continue
		}

		content := doc.Content()
		start := doc.Offset(change.Range.Start)
		end := doc.Offset(change.Range.End)
		if end < start {
			end = start
		}

		spliced := make([]byte, 0, len(content)-(end-start)+len(change.Text))
		spliced = append(spliced, content[:start]...)
		spliced = append(spliced, change.Text...)
		spliced = append(spliced, content[end:]...)
		doc = document.New(uri, string(spliced))
	}

	m.docs[uri] = doc
	return doc, nil
}

// Close forgets an open document.
func (m *Manager) Close(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[uri]; !ok {
		return fmt.Errorf("document not open: %s", uri)
	}
	delete(m.docs, uri)
	return nil
}

// CloseAll drops every open document.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]*document.Document)
}
