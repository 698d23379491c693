package logformat

import (
	"reflect"
	"testing"
)

func TestTokenizeLinux(t *testing.T) {
	line := "Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; user unknown"
	lf, _ := NewRegistry().Get("Linux")

	got, err := Tokenize(line, lf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"check", "pass;", "user", "unknown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize =\n  %#v\nwant\n  %#v", got, want)
	}
}

func TestTokenizeNoMatchYieldsEmpty(t *testing.T) {
	lf, _ := NewRegistry().Get("Linux")
	got, err := Tokenize("this line matches nothing at all", lf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tokens for a non-matching line, got %#v", got)
	}
}

func TestTokenizeHealthAppNoCensorPatterns(t *testing.T) {
	lf, _ := NewRegistry().Get("HealthApp")
	got, err := Tokenize(`20171223-22:15:29:606|Step_LSC|30002312|onStandStepChanged 3579`, lf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"onStandStepChanged", "3579"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(HealthApp) =\n  %#v\nwant\n  %#v", got, want)
	}
}
