// Package completion turns a cursor position inside partially-typed markdown
// link syntax into ranked completion items with precise replacement edits.
package completion

import (
	"net/url"
	"regexp"
	"strings"

	"marklink/internal/document"
)

// Kind classifies what the user is in the middle of typing.
type Kind int

const (
	KindNone Kind = iota
	KindAnchorInCurrentFile
	KindAnchorInOtherFile
	KindRelativePath
	KindAbsolutePath
	KindReferenceLabel
)

// Context is the classified completion context for one request. It lives for
// the duration of that request only.
type Context struct {
	Kind Kind

	// Prefix filters candidates: the typed fragment (anchors), the final
	// path segment (paths), or the partial label (references). Percent
	// escapes are already decoded.
	Prefix string

	// PathPart is the already-typed portion before the segment being
	// completed: the directory prefix for paths, or the full target path for
	// AnchorInOtherFile. Decoded.
	PathPart string

	// AngleBracket is set when the destination is written in `<...>` form,
	// where spaces stay literal and insertion text must not be escaped.
	AngleBracket bool

	// ReplaceRange spans the in-progress segment up to the cursor; accepting
	// a completion replaces exactly this span.
	ReplaceRange document.Range
}

var (
	// Cursor inside an inline link destination: `[text](` then either an
	// angle-bracketed or a bare destination, still unclosed.
	inlineDestPattern = regexp.MustCompile(`\[[^\[\]]*\]\(\s*(?:<([^<>]*)|([^()<>\s]*))$`)

	// Cursor inside a link-definition destination: `[label]:` at line start.
	definitionDestPattern = regexp.MustCompile(`^ {0,3}\[[^\[\]]*\]:\s+(?:<([^<>]*)|(\S*))$`)

	// Cursor inside a reference label: `[text][`.
	referenceLabelPattern = regexp.MustCompile(`\[[^\[\]]*\]\[([^\[\]]*)$`)

	// A typed URI scheme such as `http:`; schemed destinations are not
	// completable.
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
)

// Classify inspects the line around the cursor and decides what is being
// completed. lineBefore and lineAfter are the cursor's line split at the
// cursor; pos is the cursor itself.
func Classify(lineBefore, lineAfter string, pos document.Position) Context {
	if m := inlineDestPattern.FindStringSubmatchIndex(lineBefore); m != nil {
		return classifyDestination(lineBefore, pos, m)
	}
	if m := definitionDestPattern.FindStringSubmatchIndex(lineBefore); m != nil {
		return classifyDestination(lineBefore, pos, m)
	}
	if m := referenceLabelPattern.FindStringSubmatchIndex(lineBefore); m != nil {
		typed := lineBefore[m[2]:m[3]]
		return Context{
			Kind:         KindReferenceLabel,
			Prefix:       typed,
			ReplaceRange: segmentRange(pos, uint32(m[2])),
		}
	}
	return Context{Kind: KindNone}
}

// classifyDestination handles both inline and definition destinations; m is
// a submatch index with group 1 = angle-bracketed text, group 2 = bare text.
func classifyDestination(lineBefore string, pos document.Position, m []int) Context {
	var typed string
	var typedStart int
	angle := false
	if m[2] >= 0 {
		typed = lineBefore[m[2]:m[3]]
		typedStart = m[2]
		angle = true
	} else {
		typed = lineBefore[m[4]:m[5]]
		typedStart = m[4]
	}

	if schemePattern.MatchString(typed) {
		return Context{Kind: KindNone}
	}

	if strings.HasPrefix(typed, "#") {
		return Context{
			Kind:         KindAnchorInCurrentFile,
			Prefix:       decode(typed[1:]),
			AngleBracket: angle,
			ReplaceRange: segmentRange(pos, uint32(typedStart)),
		}
	}

	// First `#` wins: anything before it is the target path, anything after
	// is the fragment filter.
	if hash := strings.Index(typed, "#"); hash >= 0 {
		return Context{
			Kind:         KindAnchorInOtherFile,
			Prefix:       decode(typed[hash+1:]),
			PathPart:     decode(typed[:hash]),
			AngleBracket: angle,
			ReplaceRange: segmentRange(pos, uint32(typedStart+hash)),
		}
	}

	kind := KindRelativePath
	if strings.HasPrefix(typed, "/") {
		kind = KindAbsolutePath
	}

	// Only the final segment is being completed; earlier segments narrow the
	// directory to list.
	segStart := strings.LastIndex(typed, "/") + 1
	return Context{
		Kind:         kind,
		Prefix:       decode(typed[segStart:]),
		PathPart:     decode(typed[:segStart]),
		AngleBracket: angle,
		ReplaceRange: segmentRange(pos, uint32(typedStart+segStart)),
	}
}

func segmentRange(cursor document.Position, startChar uint32) document.Range {
	return document.Range{
		Start: document.Position{Line: cursor.Line, Character: startChar},
		End:   cursor,
	}
}

// decode resolves percent escapes already present in the typed prefix so
// candidates are matched against decoded names. Bad escapes pass through.
func decode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
