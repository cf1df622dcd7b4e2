// Package frontend defines how source languages are lowered into the UAST
// and keeps a registry of the available front ends.
package frontend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/refract/pkg/uast"
)

// ErrUnsupportedLanguage is returned when no front end handles a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Diagnostic is a non-fatal problem found while lowering.
type Diagnostic struct {
	Span    uast.Span
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Unit is the result of lowering one buffer.
type Unit struct {
	Path     string
	Language string
	// Source is the exact buffer every span in Decls refers to.
	Source      []byte
	Decls       []uast.TopLevel
	Diagnostics []Diagnostic
}

// Find returns every declaration named name, searching modules and class
// bodies recursively, in source order.
func (u *Unit) Find(name string) []uast.TopLevel {
	var out []uast.TopLevel
	var visit func(decls []uast.TopLevel)
	visit = func(decls []uast.TopLevel) {
		for _, d := range decls {
			if uast.DeclName(d) == name {
				out = append(out, d)
			}
			switch d := d.(type) {
			case *uast.Module:
				visit(d.Body)
			case *uast.Class:
				visit(d.Body)
			}
		}
	}
	visit(u.Decls)
	return out
}

// Frontend lowers source text into UAST declarations.
type Frontend interface {
	// Language returns the canonical language id, e.g. "csharp".
	Language() string
	// Parse lowers src. Constructs the front end does not understand become
	// Unknown or Raw nodes rather than errors.
	Parse(ctx context.Context, path string, src []byte) (*Unit, error)
}

// Registry maps language ids and aliases to front ends.
type Registry struct {
	mu      sync.RWMutex
	byLang  map[string]Frontend
	aliases map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLang:  make(map[string]Frontend),
		aliases: make(map[string]string),
	}
}

// Register adds f under its language id and the given aliases.
func (r *Registry) Register(f Frontend, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lang := strings.ToLower(f.Language())
	r.byLang[lang] = f
	for _, a := range aliases {
		r.aliases[strings.ToLower(a)] = lang
	}
}

// Resolve returns the canonical id for a language name or alias.
func (r *Registry) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := r.byLang[key]; ok {
		return key, true
	}
	lang, ok := r.aliases[key]
	return lang, ok
}

// Get returns the front end for a language name or alias.
func (r *Registry) Get(name string) (Frontend, error) {
	lang, ok := r.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byLang[lang], nil
}

// Languages returns the registered language ids, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byLang))
	for lang := range r.byLang {
		out = append(out, lang)
	}
	slices.SortFunc(out, cmp.Compare[string])
	return out
}

// DefaultRegistry holds the built-in front ends, registered during init by
// their packages.
//
//nolint:gochecknoglobals // Global registry is intentional for registration
var DefaultRegistry = NewRegistry()
