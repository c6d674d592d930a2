package interpro

import (
	"strings"
	"testing"
)

func TestTree_MostRemoteAncestor(t *testing.T) {
	tree := Tree{
		"IPR000003": "IPR000002",
		"IPR000002": "IPR000001",
	}

	if got := tree.MostRemoteAncestor("IPR000003"); got != "IPR000001" {
		t.Errorf("ancestor of IPR000003 = %s, want IPR000001", got)
	}
	if got := tree.MostRemoteAncestor("IPR000001"); got != "IPR000001" {
		t.Errorf("a root is its own ancestor, got %s", got)
	}
	if got := tree.MostRemoteAncestor("IPR999999"); got != "IPR999999" {
		t.Errorf("an unknown ID is its own ancestor, got %s", got)
	}
}

func TestInterPro_ParseParentChildFile(t *testing.T) {
	input := strings.Join([]string{
		"IPR000001::Kringle::PF00024::SM00130",
		"--IPR000002::Kringle subgroup::PF00025",
		"----IPR000003::Kringle leaf::PTHR11863:SF4",
		"--IPR000004::Other subgroup::PS00021",
		"IPR000010::Unrelated root::PF00100",
	}, "\n")

	ip := NewInterPro()
	if err := ip.parse(strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ip.Tree.MostRemoteAncestor("IPR000003"); got != "IPR000001" {
		t.Errorf("ancestor of IPR000003 = %s, want IPR000001", got)
	}
	if got := ip.Tree.MostRemoteAncestor("IPR000004"); got != "IPR000001" {
		t.Errorf("ancestor of IPR000004 = %s, want IPR000001", got)
	}
	if got := ip.Tree.MostRemoteAncestor("IPR000010"); got != "IPR000010" {
		t.Errorf("IPR000010 is a root, got ancestor %s", got)
	}

	if got := ip.Mapping.Get("PF00025"); got != "IPR000002" {
		t.Errorf("alias PF00025 = %s, want IPR000002", got)
	}
	// PTHR subfamily aliases are stored without the :SF suffix.
	if got := ip.Mapping.Get("PTHR11863"); got != "IPR000003" {
		t.Errorf("alias PTHR11863 = %s, want IPR000003", got)
	}
	if got := ip.Mapping.Get("PF99999"); got != "PF99999" {
		t.Errorf("unknown alias should map to itself, got %s", got)
	}
}

func TestInterPro_ParseRejectsOddDashes(t *testing.T) {
	ip := NewInterPro()
	if err := ip.parse(strings.NewReader("---IPR000001::broken")); err == nil {
		t.Error("expected error for odd dash count")
	}
}

func TestInterPro_Resolve(t *testing.T) {
	ip := NewInterPro()
	ip.Tree["IPR000002"] = "IPR000001"
	ip.Mapping["PF00024"] = "IPR000002"

	// A known canonical ID wins and is walked to the root.
	if got := ip.Resolve("PF00024", "IPR000002"); got != "IPR000001" {
		t.Errorf("Resolve with canonical = %s, want IPR000001", got)
	}
	// Without a canonical ID the alias table decides.
	if got := ip.Resolve("PF00024", ""); got != "IPR000002" {
		t.Errorf("Resolve via alias = %s, want IPR000002", got)
	}
	// Unknown IDs pass through unchanged.
	if got := ip.Resolve("PF99999", ""); got != "PF99999" {
		t.Errorf("Resolve of unknown ID = %s, want PF99999", got)
	}

	// Resolution is idempotent.
	first := ip.Resolve("PF00024", "IPR000002")
	if again := ip.Resolve(first, first); again != first {
		t.Errorf("Resolve is not idempotent: %s then %s", first, again)
	}
	// And stable across repeated (memoized) calls.
	if got := ip.Resolve("PF00024", "IPR000002"); got != first {
		t.Errorf("memoized Resolve = %s, want %s", got, first)
	}
}

func TestNames_Get(t *testing.T) {
	names := Names{"IPR000001": "Kringle"}
	if got := names.Get("IPR000001"); got != "Kringle" {
		t.Errorf("Get = %q, want Kringle", got)
	}
	if got := names.Get("IPR999999"); got != "IPR999999" {
		t.Errorf("unknown ID should fall back to itself, got %q", got)
	}
}
