// Package lsp serves exprcst diagnostics and tree hovers to editors over the
// Language Server Protocol.
package lsp

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/source"
)

// diagnosticSource names exprcst in editor diagnostic lists.
const diagnosticSource = "exprcst"

// document is the latest state of one open text document.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	result  *check.FileResult

	// root is the parsed tree of a plain expression document; nil for
	// Markdown documents.
	root *cst.Node
}

// Workspace tracks open documents and derives their diagnostics.
// It is safe for concurrent use.
type Workspace struct {
	engine *check.Engine

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

// NewWorkspace creates a Workspace checking documents with engine.
func NewWorkspace(engine *check.Engine) *Workspace {
	return &Workspace{
		engine: engine,
		docs:   make(map[protocol.DocumentUri]*document),
	}
}

// Update replaces the text of a document and reparses it.
func (w *Workspace) Update(
	ctx context.Context, uri protocol.DocumentUri, version protocol.Integer, text string,
) error {
	path := uriToPath(uri)

	result, err := w.engine.CheckContent(ctx, path, []byte(text))
	if err != nil {
		return fmt.Errorf("check %s: %w", uri, err)
	}

	doc := &document{uri: uri, version: version, result: result, root: result.Syntax}

	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.docs[uri]; ok && prev.version > version {
		return nil
	}
	w.docs[uri] = doc
	return nil
}

// Close forgets a document.
func (w *Workspace) Close(uri protocol.DocumentUri) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.docs, uri)
}

// Len returns the number of open documents.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.docs)
}

func (w *Workspace) get(uri protocol.DocumentUri) *document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.docs[uri]
}

// Diagnostics returns the diagnostics of an open document in protocol form.
// Unknown documents yield an empty, non-nil list so that publishing it clears
// stale entries in the editor.
func (w *Workspace) Diagnostics(uri protocol.DocumentUri) []protocol.Diagnostic {
	doc := w.get(uri)
	if doc == nil {
		return []protocol.Diagnostic{}
	}

	out := make([]protocol.Diagnostic, 0, len(doc.result.Diagnostics))
	for i := range doc.result.Diagnostics {
		out = append(out, toProtocolDiagnostic(doc.result.Source, &doc.result.Diagnostics[i]))
	}
	return out
}

// Hover describes the token under pos and the nodes enclosing it. It
// returns nil for Markdown documents and positions outside the tree.
func (w *Workspace) Hover(uri protocol.DocumentUri, pos protocol.Position) *protocol.Hover {
	doc := w.get(uri)
	if doc == nil || doc.root == nil {
		return nil
	}

	file := doc.result.Source
	offset := file.OffsetUTF16(int(pos.Line), int(pos.Character))

	// A position at or past the end of a line names the last token on it,
	// not the line terminator.
	if line := int(pos.Line); line < len(file.Lines) {
		l := file.Lines[line]
		if offset == l.NewlineStart && offset > l.Start {
			offset--
		}
	}

	tok := doc.root.TokenAt(offset)
	if tok == nil {
		return nil
	}

	r := tok.Range()
	hoverRange := toProtocolRange(file, r.Start, r.End)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describeToken(tok),
		},
		Range: &hoverRange,
	}
}

// describeToken renders a token and its ancestor chain as Markdown.
func describeToken(tok *cst.Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s`", tok.String())

	parent := tok.Parent()
	if parent == nil {
		return b.String()
	}

	chain := append([]*cst.Node{parent}, parent.Ancestors()...)
	b.WriteString("\n\n")
	for i, n := range chain {
		if i > 0 {
			b.WriteString(" < ")
		}
		fmt.Fprintf(&b, "%s@%s", n.Kind(), n.Range())
	}
	return b.String()
}

func toProtocolDiagnostic(file *source.File, diag *check.Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(diag.Severity)
	src := diagnosticSource
	return protocol.Diagnostic{
		Range:    toProtocolRange(file, diag.Offset, diag.EndOffset),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: diag.Code},
		Source:   &src,
		Message:  diag.Message,
	}
}

func toProtocolRange(file *source.File, start, end int) protocol.Range {
	startLine, startCol := file.UTF16Position(start)
	endLine, endCol := file.UTF16Position(end)
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(startLine), Character: protocol.UInteger(startCol)},
		End:   protocol.Position{Line: protocol.UInteger(endLine), Character: protocol.UInteger(endCol)},
	}
}

func toProtocolSeverity(sev config.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case config.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case config.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// uriToPath converts a file URI to a local path. Other URIs are returned
// unchanged so that untitled buffers still get a name.
func uriToPath(uri protocol.DocumentUri) string {
	raw := string(uri)
	if !strings.HasPrefix(raw, "file://") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return filepath.Clean(parsed.Path)
}
