// Package registry maps MIME types to the session-bus services that handle
// them. A stock desktop session is covered by built-in handlers; a site can
// extend or override those by dropping .hcl files into the platform registry
// directory. The registry is platform state describing the session's
// services, not configuration of this program.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/mimesummon/internal/ctxlog"
	"github.com/vk/mimesummon/internal/fsutil"
)

// DefaultDir is where the platform drops handler registry files.
const DefaultDir = "/usr/share/mimesummon/handlers.d"

// Handler describes one bus service that can open files of certain types.
// Handlers follow the portal calling convention: the named method receives
// an empty parent window handle, the file URI, and an options map.
type Handler struct {
	Name      string   `hcl:"name,label"`
	Service   string   `hcl:"service"`
	Object    string   `hcl:"object"`
	Interface string   `hcl:"interface"`
	Method    string   `hcl:"method"`
	MIMETypes []string `hcl:"mime_types"`
}

// hclRegistryFile represents the top-level structure of a registry file for
// decoding.
type hclRegistryFile struct {
	Handlers []*Handler `hcl:"handler,block"`
}

// Registry resolves MIME types to handlers. Later registrations shadow
// earlier ones, so site-provided files override the builtins.
type Registry struct {
	handlers []*Handler
}

// New returns a Registry seeded with the built-in handlers.
func New() *Registry {
	r := &Registry{}
	for _, h := range builtins {
		r.handlers = append(r.handlers, h)
	}
	return r
}

// Register adds a handler. Handlers registered later shadow earlier ones
// for the patterns they share.
func (r *Registry) Register(h *Handler) error {
	if err := h.validate(); err != nil {
		return fmt.Errorf("handler %q: %w", h.Name, err)
	}
	r.handlers = append(r.handlers, h)
	return nil
}

// Len reports how many handlers are registered.
func (r *Registry) Len() int {
	return len(r.handlers)
}

// LoadDir parses every .hcl file under dir and registers the handlers found
// within. A missing directory is not an error; a malformed file is.
func (r *Registry) LoadDir(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No handler registry directory, using builtins only.", "dir", dir)
		return nil
	}

	files, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return fmt.Errorf("scanning handler registry %s: %w", dir, err)
	}

	parser := hclparse.NewParser()
	for _, path := range files {
		handlers, err := handlersFromHCL(path, parser)
		if err != nil {
			return err
		}
		for _, h := range handlers {
			if err := r.Register(h); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		logger.Debug("Handler registry file loaded.", "path", path, "handlers", len(handlers))
	}

	return nil
}

// handlersFromHCL parses a single registry file and returns the handlers
// declared in it.
func handlersFromHCL(path string, parser *hclparse.Parser) ([]*Handler, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, diags)
	}

	var parsed hclRegistryFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode registry file %s: %w", path, diags)
	}

	return parsed.Handlers, nil
}

func (h *Handler) validate() error {
	switch {
	case h.Service == "":
		return errors.New("service must not be empty")
	case h.Object == "":
		return errors.New("object must not be empty")
	case h.Interface == "":
		return errors.New("interface must not be empty")
	case h.Method == "":
		return errors.New("method must not be empty")
	case len(h.MIMETypes) == 0:
		return errors.New("mime_types must name at least one type")
	}
	return nil
}

// Resolve returns the handler registered for mimeType. Matching prefers an
// exact type over a major-class wildcard ("image/*") over the universal
// fallback ("*/*"); within each tier the most recently registered handler
// wins.
func (r *Registry) Resolve(mimeType string) (*Handler, bool) {
	mimeType = normalize(mimeType)
	major, _, _ := strings.Cut(mimeType, "/")

	for _, pattern := range []string{mimeType, major + "/*", "*/*"} {
		if h := r.match(pattern); h != nil {
			return h, true
		}
	}
	return nil, false
}

func (r *Registry) match(pattern string) *Handler {
	var found *Handler
	for _, h := range r.handlers {
		for _, p := range h.MIMETypes {
			if normalize(p) == pattern {
				found = h
			}
		}
	}
	return found
}

// normalize strips any parameters ("text/html; charset=utf-8") and lowers
// the type so lookups are case-insensitive.
func normalize(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
