package retrieval

import (
	"reflect"
	"testing"

	domdoc "github.com/courtlab/assist/internal/domain/document"
)

func TestBoostSignatureShoes_StablePartition(t *testing.T) {
	in := []domdoc.Candidate{
		shoe("a", "Nike", "GT Cut 3", "1"),
		shoe("b", "Under Armour", "Curry 11", "1"),
		shoe("c", "Adidas", "Harden Vol 8", "1"),
		shoe("d", "Under Armour", "Curry 10", "1"),
	}

	got := boostSignatureShoes(in, []string{"Curry 11", "Curry 10"})

	want := []string{"b", "d", "a", "c"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestBoostSignatureShoes_CaseInsensitiveSubstring(t *testing.T) {
	in := []domdoc.Candidate{
		shoe("a", "NIKE", "KYRIE INFINITY", "1"),
		shoe("b", "Adidas", "Dame 9", "1"),
	}

	got := boostSignatureShoes(in, []string{"kyrie infinity"})
	if got[0].ID() != "a" {
		t.Errorf("first = %s, want a", got[0].ID())
	}
}

func TestBoostSignatureShoes_MembershipUnchanged(t *testing.T) {
	in := []domdoc.Candidate{
		shoe("a", "Nike", "GT Cut 3", "1"),
		shoe("b", "Under Armour", "Curry 11", "1"),
	}

	got := boostSignatureShoes(in, []string{"Curry 11"})
	if len(got) != len(in) {
		t.Fatalf("len = %d, want %d", len(got), len(in))
	}
}

func TestBoostSignatureShoes_Idempotent(t *testing.T) {
	in := []domdoc.Candidate{
		shoe("a", "Nike", "GT Cut 3", "1"),
		shoe("b", "Under Armour", "Curry 11", "1"),
		shoe("c", "Adidas", "Harden Vol 8", "1"),
	}
	models := []string{"Curry 11"}

	once := boostSignatureShoes(in, models)
	twice := boostSignatureShoes(once, models)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("boost not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestBoostSignatureShoes_NoModels(t *testing.T) {
	in := []domdoc.Candidate{
		shoe("a", "Nike", "GT Cut 3", "1"),
		shoe("b", "Adidas", "Harden Vol 8", "1"),
	}

	got := boostSignatureShoes(in, nil)
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Errorf("ids = %v, order must be untouched", ids(got))
	}

	got = boostSignatureShoes(in, []string{"  ", ""})
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Errorf("ids = %v, blank models must be ignored", ids(got))
	}
}
