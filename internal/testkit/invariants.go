package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/walk"
)

// CheckSpanInvariants runs a minimal set of span invariants on a lowered tree:
// 1) every span lies within the file content and points at the file
// 2) every child span is contained in its parent span
// 3) every non-root node has a parent that lists it as a child
func CheckSpanInvariants(t *ast.Tree, sf *source.File) error {
	if t == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	nodes := t.Nodes.Slice()
	for i := range nodes {
		id := ast.NodeID(i + 1)
		n := &nodes[i]
		sp := n.Span
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("%s span %v out of bounds (len %d)", n.Kind, sp, lenContent)
		}
		for _, kid := range n.Kids {
			k := t.Node(kid)
			if k == nil {
				continue
			}
			if k.Parent != id {
				return fmt.Errorf("%s child %s has parent %d, want %d", n.Kind, k.Kind, k.Parent, id)
			}
			if !sp.Contains(k.Span) {
				return fmt.Errorf("%s span %v does not contain child %s span %v", n.Kind, sp, k.Kind, k.Span)
			}
		}
		if id != t.Root && !n.Parent.IsValid() {
			return fmt.Errorf("%s at %v is detached from the tree", n.Kind, sp)
		}
	}
	return nil
}

// balanceChecker verifies that enter/leave and scope push/pop nest strictly.
type balanceChecker struct {
	nodes  []ast.NodeID
	scopes []ast.NodeID
	// scopeBase[i] is len(nodes) when scopes[i] was opened.
	scopeBase []int
	err       error
}

func (c *balanceChecker) fail(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf(format, args...)
	}
}

func (c *balanceChecker) Enter(ev walk.Event) bool {
	c.nodes = append(c.nodes, ev.ID)
	return true
}

func (c *balanceChecker) Leave(ev walk.Event) {
	if len(c.nodes) == 0 || c.nodes[len(c.nodes)-1] != ev.ID {
		c.fail("leave of %s (%d) does not match the innermost entered node", ev.Kind(), ev.ID)
		return
	}
	if n := len(c.scopes); n > 0 && c.scopeBase[n-1] == len(c.nodes) {
		c.fail("node %d left while its scope is still open", ev.ID)
	}
	c.nodes = c.nodes[:len(c.nodes)-1]
}

func (c *balanceChecker) EnterScope(_ walk.ScopeFlags, id ast.NodeID) {
	if len(c.nodes) == 0 || c.nodes[len(c.nodes)-1] != id {
		c.fail("scope %d opened outside its node", id)
	}
	c.scopes = append(c.scopes, id)
	c.scopeBase = append(c.scopeBase, len(c.nodes))
}

func (c *balanceChecker) LeaveScope(id ast.NodeID) {
	n := len(c.scopes)
	if n == 0 || c.scopes[n-1] != id {
		c.fail("scope %d closed out of order", id)
		return
	}
	if c.scopeBase[n-1] != len(c.nodes) {
		c.fail("scope %d closed with children still open", id)
	}
	c.scopes = c.scopes[:n-1]
	c.scopeBase = c.scopeBase[:n-1]
}

// stopper stops the walk once limit nodes have been entered.
type stopper struct {
	*balanceChecker
	w       *walk.Walker
	limit   int
	entered int
}

func (s *stopper) Enter(ev walk.Event) bool {
	s.entered++
	if s.limit > 0 && s.entered >= s.limit {
		s.w.Stop()
	}
	return s.balanceChecker.Enter(ev)
}

// CheckBalanced walks the tree and reports the first enter/leave or scope
// nesting violation. If stopAfter > 0 the walk is stopped after that many
// nodes have been entered; everything entered must still be left.
func CheckBalanced(t *ast.Tree, stopAfter int) error {
	c := &balanceChecker{}
	s := &stopper{balanceChecker: c, limit: stopAfter}
	s.w = walk.NewWalker(t, s)
	s.w.Walk(t.Root)
	if c.err != nil {
		return c.err
	}
	if len(c.nodes) != 0 || len(c.scopes) != 0 {
		return fmt.Errorf("walk ended with %d nodes and %d scopes open", len(c.nodes), len(c.scopes))
	}
	return nil
}
