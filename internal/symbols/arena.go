package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/walk"
)

// store is a 1-based slice arena; id 0 is the "none" sentinel of I.
type store[T any, I ~uint32] struct {
	data []T
}

func newStore[T any, I ~uint32](hint uint32) store[T, I] {
	return store[T, I]{data: make([]T, 1, hint+1)}
}

func (s *store[T, I]) add(v T, what string) I {
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	s.data = append(s.data, v)
	return I(n)
}

func (s *store[T, I]) get(id I) *T {
	if id == 0 || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *store[T, I]) size() int { return len(s.data) - 1 }

// Scopes holds the scope tree of one file.
type Scopes struct {
	store[Scope, ScopeID]
}

func NewScopes(hint uint32) *Scopes {
	return &Scopes{newStore[Scope, ScopeID](max(hint, 32))}
}

// New opens a scope under parent and links it into the parent's children.
func (s *Scopes) New(flags walk.ScopeFlags, parent ScopeID, node ast.NodeID, span source.Span) ScopeID {
	id := s.add(Scope{
		Flags:     flags,
		Parent:    parent,
		Node:      node,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	}, "scope")
	if p := s.get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *Scopes) Get(id ScopeID) *Scope { return s.get(id) }

func (s *Scopes) Len() int { return s.size() }

// Symbols holds every declared binding of one file.
type Symbols struct {
	store[Symbol, SymbolID]
}

func NewSymbols(hint uint32) *Symbols {
	return &Symbols{newStore[Symbol, SymbolID](max(hint, 64))}
}

func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols: nil symbol")
	}
	return s.add(*sym, "symbol")
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.get(id) }

func (s *Symbols) Len() int { return s.size() }
