package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"chaoslab/internal/compiler"
	"chaoslab/internal/token"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("chaoslab.lsp")

// Legend advertised to the client. Indices into these slices are part of
// the wire format.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

type document struct {
	content     string
	diagnostics []protocol.Diagnostic
}

// Handler implements the language server for chaoslab sources. Documents are
// kept in memory keyed by local path.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewHandler() *Handler {
	return &Handler{docs: make(map[string]*document)}
}

// Initialize advertises full-document sync, keyword completion and semantic tokens.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	diagnostics, err := h.update(params.TextDocument.URI, &params.TextDocument.Text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	var text *string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = &c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = &c.Text
			}
		}
	}

	diagnostics, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.docs, path)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion offers the reserved words.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(token.Keywords()))
	for _, kw := range token.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label:  kw,
			Kind:   &kind,
			Detail: ptrString("keyword"),
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()

	if !ok {
		diagnostics, err := h.update(rawURI, nil)
		if err != nil {
			return nil, err
		}
		publishDiagnostics(ctx, rawURI, diagnostics)

		h.mu.RLock()
		doc = h.docs[path]
		h.mu.RUnlock()
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.content)),
	}, nil
}

// Diagnostics returns what was last published for the document at uri.
func (h *Handler) Diagnostics(uri protocol.DocumentUri) []protocol.Diagnostic {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if doc, ok := h.docs[path]; ok {
		return doc.diagnostics
	}
	return nil
}

// update recompiles the document. A nil text means the editor did not send
// the content, so it is read from disk.
func (h *Handler) update(rawURI protocol.DocumentUri, text *string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	var content string
	if text != nil {
		content = *text
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		content = string(data)
	}

	diagnostics := []protocol.Diagnostic{}
	result, err := compiler.Compile(path, content, compiler.DefaultOptions())
	if err != nil {
		diagnostics = append(diagnostics, ConvertCompileError(err)...)
	} else {
		diagnostics = append(diagnostics, ConvertWarnings(result.Warnings)...)
	}

	h.mu.Lock()
	h.docs[path] = &document{content: content, diagnostics: diagnostics}
	h.mu.Unlock()

	return diagnostics, nil
}

// uriToPath converts a file URI to a platform-local path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
