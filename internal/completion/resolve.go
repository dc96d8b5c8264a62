package completion

import (
	ctxpkg "context"
	"path/filepath"
	"sort"
	"strings"

	"marklink/internal/document"
	"marklink/internal/markdown"
	"marklink/internal/workspace"
)

// HeadingSource enumerates the headings of a document. The index-backed
// implementation lives in internal/index; tests use markdown.Headings
// directly.
type HeadingSource interface {
	Headings(ctx ctxpkg.Context, doc *document.Document) ([]markdown.Heading, error)
}

// Candidate is one raw completion target before assembly. Label is always
// the unescaped display form; InsertText may still need percent-escaping.
type Candidate struct {
	Label       string
	InsertText  string
	IsDirectory bool
}

// Resolver lists completion candidates for a classified context.
type Resolver struct {
	workspace workspace.Workspace
	headings  HeadingSource
}

func NewResolver(ws workspace.Workspace, headings HeadingSource) *Resolver {
	return &Resolver{workspace: ws, headings: headings}
}

// Resolve produces the candidate list for linkCtx, sorted by label. Every
// failure mode (missing file, canceled request, unreadable directory)
// degrades to an empty list.
func (r *Resolver) Resolve(ctx ctxpkg.Context, linkCtx Context, doc *document.Document) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []Candidate
	switch linkCtx.Kind {
	case KindAnchorInCurrentFile:
		anchors, err := r.anchorCandidates(ctx, doc, linkCtx.Prefix)
		if err != nil {
			return nil, err
		}
		candidates = anchors

	case KindAnchorInOtherFile:
		target := linkCtx.PathPart
		if !filepath.IsAbs(target) {
			target = filepath.Join(doc.Dir(), target)
		} else {
			target = filepath.Join(r.workspace.Root(), target)
		}
		other, ok := r.workspace.ResolveDocument(ctx, target)
		if !ok {
			// An absent target offers nothing; it is not an error.
			return nil, nil
		}
		anchors, err := r.anchorCandidates(ctx, other, linkCtx.Prefix)
		if err != nil {
			return nil, err
		}
		candidates = anchors

	case KindRelativePath, KindAbsolutePath:
		base := doc.Dir()
		if linkCtx.Kind == KindAbsolutePath {
			base = r.workspace.Root()
		}
		dir := filepath.Join(base, linkCtx.PathPart)

		children, err := r.workspace.ListChildren(ctx, dir)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if !strings.HasPrefix(child.Name, linkCtx.Prefix) {
				continue
			}
			insert := child.Name
			if child.IsDir {
				insert += "/"
			}
			candidates = append(candidates, Candidate{
				Label:       child.Name,
				InsertText:  insert,
				IsDirectory: child.IsDir,
			})
		}

		// Listing the document's own directory also offers its own anchors,
		// so `[](` presents both files and `#heading` targets. The typed
		// prefix filters anchors by their `#slug` label, so any prefix not
		// starting the anchor form excludes them.
		if dir == filepath.Clean(doc.Dir()) {
			anchors, err := r.anchorCandidates(ctx, doc, "")
			if err != nil {
				return nil, err
			}
			for _, anchor := range anchors {
				if strings.HasPrefix(anchor.Label, linkCtx.Prefix) {
					candidates = append(candidates, anchor)
				}
			}
		}

	case KindReferenceLabel:
		prefix := markdown.NormalizeLabel(linkCtx.Prefix)
		seen := make(map[string]bool)
		for _, def := range markdown.Definitions(doc) {
			if seen[def.Label] || !strings.HasPrefix(def.Label, prefix) {
				continue
			}
			seen[def.Label] = true
			candidates = append(candidates, Candidate{Label: def.Label, InsertText: def.Label})
		}

	default:
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Label < candidates[j].Label })
	return candidates, nil
}

// anchorCandidates turns a document's headings into `#slug` candidates, one
// per unique slug, filtered by the typed fragment.
func (r *Resolver) anchorCandidates(ctx ctxpkg.Context, doc *document.Document, prefix string) ([]Candidate, error) {
	headings, err := r.headings.Headings(ctx, doc)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(prefix)
	seen := make(map[string]bool)
	var candidates []Candidate
	for _, heading := range headings {
		if heading.Slug == "" || seen[heading.Slug] {
			continue
		}
		seen[heading.Slug] = true
		if !strings.HasPrefix(heading.Slug, prefix) {
			continue
		}
		candidates = append(candidates, Candidate{
			Label:      "#" + heading.Slug,
			InsertText: "#" + heading.Slug,
		})
	}
	return candidates, nil
}
