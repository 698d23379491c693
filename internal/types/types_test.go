package types

import "testing"

func TestPairKey(t *testing.T) {
	key, ok := PairKey("foo", "bar")
	if !ok {
		t.Fatal("expected ok=true for separator-free tokens")
	}
	if key != "foo^bar" {
		t.Errorf("expected %q, got %q", "foo^bar", key)
	}
}

func TestPairKeyRejectsSeparator(t *testing.T) {
	if _, ok := PairKey("fo^o", "bar"); ok {
		t.Error("expected ok=false when first token contains separator")
	}
	if _, ok := PairKey("foo", "ba^r"); ok {
		t.Error("expected ok=false when second token contains separator")
	}
}

func TestTripleKey(t *testing.T) {
	key, ok := TripleKey("a", "b", "c")
	if !ok {
		t.Fatal("expected ok=true for separator-free tokens")
	}
	if key != "a^b^c" {
		t.Errorf("expected %q, got %q", "a^b^c", key)
	}
}

func TestTripleKeyRejectsSeparator(t *testing.T) {
	cases := [][3]string{
		{"a^", "b", "c"},
		{"a", "b^", "c"},
		{"a", "b", "c^"},
	}
	for _, c := range cases {
		if _, ok := TripleKey(c[0], c[1], c[2]); ok {
			t.Errorf("expected ok=false for tokens %v", c)
		}
	}
}

func TestContainsSeparator(t *testing.T) {
	if ContainsSeparator("plain") {
		t.Error("expected no separator in a plain token")
	}
	if !ContainsSeparator("has^caret") {
		t.Error("expected separator to be detected")
	}
}
