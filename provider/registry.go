// Package provider connects the agent to the external tool provider
// and holds the per-session tool descriptor registry.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrProviderUnavailable means the tool provider could not be reached.
// The session cannot start without its tool catalog.
var ErrProviderUnavailable = errors.New("tool provider unavailable")

// Param is one declared tool parameter.
type Param struct {
	Name string
	Type string
}

// Descriptor describes one invocable tool as reported by the provider.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param
}

// Provider is the external tool provider: a tool listing plus an
// invocation endpoint. The tools' own logic lives on the other side of
// this interface.
type Provider interface {
	ListTools(ctx context.Context) ([]Descriptor, error)
	Invoke(ctx context.Context, name string, args map[string]any) (string, error)
}

// Registry holds the session's tool descriptors, fetched exactly once
// at session start and read-only afterwards. It is safe to share
// across iterations.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]Descriptor
}

// LoadRegistry fetches the provider's tool list. Call it once per
// session; a failure wraps ErrProviderUnavailable.
func LoadRegistry(ctx context.Context, p Provider) (*Registry, error) {
	descriptors, err := p.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	return &Registry{descriptors: descriptors, byName: byName}, nil
}

// Has reports whether a tool with the given name was listed by the
// provider.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Len returns the number of loaded descriptors.
func (r *Registry) Len() int { return len(r.descriptors) }

// DescribeAll renders the tool catalog injected into the system
// prompt: one block per tool in provider order, with name, description
// and the declared parameters. The output is deterministic for a given
// registry.
func (r *Registry) DescribeAll() string {
	var b strings.Builder
	for _, d := range r.descriptors {
		fmt.Fprintf(&b, "- %s\n", d.Name)
		if d.Description != "" {
			fmt.Fprintf(&b, "  Description: %s\n", d.Description)
		}
		if len(d.Params) > 0 {
			b.WriteString("  Parameters:\n")
			for _, p := range d.Params {
				fmt.Fprintf(&b, "    - %s (%s)\n", p.Name, p.Type)
			}
		}
	}
	return b.String()
}
