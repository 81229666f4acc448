package ast

import "testing"

func TestKindTableIsTotal(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		name := k.String()
		if name == "" || name == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
		if got, ok := KindByName(name); !ok || got != k {
			t.Fatalf("KindByName(%q) = %v, %v", name, got, ok)
		}
	}
	if len(seen) != int(KindCount)-1 {
		t.Fatalf("expected %d named kinds, got %d", KindCount-1, len(seen))
	}
}

func TestSlotLayoutHasNoDuplicates(t *testing.T) {
	for _, k := range Kinds() {
		used := make(map[Slot]bool)
		for i, sl := range k.FixedSlots() {
			if sl == SlotNone || sl >= SlotCount {
				t.Fatalf("%s: invalid slot at %d", k, i)
			}
			if used[sl] {
				t.Fatalf("%s: slot %s appears twice", k, sl)
			}
			used[sl] = true
			if int(slotIndex[k][sl]) != i {
				t.Fatalf("%s: slotIndex[%s] = %d, want %d", k, sl, slotIndex[k][sl], i)
			}
		}
	}
}

func TestScopeKinds(t *testing.T) {
	for _, k := range []Kind{
		KindProgram, KindBlockStatement, KindFunctionDeclaration, KindArrowFunctionExpression,
		KindCatchClause, KindClassExpression, KindStaticBlock, KindTSModuleDeclaration,
	} {
		if !k.IsScope() {
			t.Fatalf("expected %s to introduce a scope", k)
		}
	}
	for _, k := range []Kind{KindIfStatement, KindCallExpression, KindFunctionBody, KindInvalid, KindCount} {
		if k.IsScope() {
			t.Fatalf("expected %s not to introduce a scope", k)
		}
	}
}
