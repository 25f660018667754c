package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"red_deer":        "Red Deer",
		"DARK":            "Dark",
		"  dark__brown  ": "Dark Brown",
		"te-awaroa":       "Te Awaroa",
		"":                "",
		"___":             "",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(p, []byte("x: 1"), 0o600); err != nil {
		t.Fatal(err)
	}
	ok, err := IsFile(p)
	if err != nil || !ok {
		t.Fatalf("IsFile(file)=%v,%v", ok, err)
	}
	ok, err = IsFile(dir)
	if err != nil || ok {
		t.Fatalf("IsFile(dir)=%v,%v", ok, err)
	}
	if _, err := IsFile(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing path")
	}
	if !IsDir(dir) || IsDir(p) {
		t.Fatal("IsDir mismatch")
	}
}
