package index

import (
	"bytes"
	"context"
	"crypto/md5"
	"time"

	"marklink/internal/document"
	"marklink/internal/markdown"
)

// Checksum returns the raw md5 digest of content. It only has to detect
// change, not resist attack.
func Checksum(content []byte) []byte {
	hash := md5.New()
	hash.Write(content)
	return hash.Sum(nil)
}

// Headings serves heading queries through the store, re-parsing only when a
// document's content no longer matches the indexed checksum. A nil store
// degrades to parsing every time.
type Headings struct {
	store *Store
}

func NewHeadings(store *Store) *Headings {
	return &Headings{store: store}
}

func (h *Headings) Headings(ctx context.Context, doc *document.Document) ([]markdown.Heading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.store == nil {
		return markdown.Headings(doc), nil
	}

	sum := Checksum([]byte(doc.Content()))
	if record, err := h.store.GetFile(doc.Path()); err == nil && bytes.Equal(record.Checksum, sum) {
		if records, err := h.store.GetHeadings(doc.Path()); err == nil {
			return headingsFromRecords(records), nil
		}
	}

	headings := markdown.Headings(doc)
	definitions := markdown.Definitions(doc)
	// Cache failures are not the request's problem; the parse result stands.
	_ = h.store.ReplaceFile(&FileRecord{
		Path:         doc.Path(),
		Checksum:     sum,
		LastModified: time.Now().Unix(),
	}, headingRecords(headings), definitionRecords(definitions))

	return headings, nil
}

// Invalidate drops the indexed rows for a path, typically after a watcher
// event. Unknown paths are fine.
func (h *Headings) Invalidate(path string) {
	if h.store == nil {
		return
	}
	if err := h.store.DeleteFile(path); err != nil && err != ErrNotFound {
		indexLog.Errorf("failed to invalidate %s: %s", path, err.Error())
	}
}

func headingRecords(headings []markdown.Heading) []HeadingRecord {
	records := make([]HeadingRecord, len(headings))
	for i, h := range headings {
		records[i] = HeadingRecord{
			Level:        h.Level,
			Text:         h.Text,
			Slug:         h.Slug,
			StartLine:    h.Range.Start.Line,
			EndLine:      h.Range.End.Line,
			EndCharacter: h.Range.End.Character,
		}
	}
	return records
}

func headingsFromRecords(records []HeadingRecord) []markdown.Heading {
	headings := make([]markdown.Heading, len(records))
	for i, r := range records {
		headings[i] = markdown.Heading{
			Level: r.Level,
			Text:  r.Text,
			Slug:  r.Slug,
			Range: document.Range{
				Start: document.Position{Line: r.StartLine, Character: 0},
				End:   document.Position{Line: r.EndLine, Character: r.EndCharacter},
			},
		}
	}
	return headings
}

func definitionRecords(definitions []markdown.LinkDefinition) []DefinitionRecord {
	records := make([]DefinitionRecord, len(definitions))
	for i, d := range definitions {
		records[i] = DefinitionRecord{
			Label:       d.Label,
			Destination: d.Destination,
			Line:        d.SourceRange.Start.Line,
			DestStart:   d.DestinationRange.Start.Character,
			DestEnd:     d.DestinationRange.End.Character,
			LineLength:  d.SourceRange.End.Character,
		}
	}
	return records
}
