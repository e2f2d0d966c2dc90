package keyboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
)

func TestReadTOML(t *testing.T) {
	src := `
name = "mini"

[keys]
a = { x = 0.1, y = 0.2 }
"." = { x = 0.75, y = 0.35 }
`
	l, err := ReadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if l.Name() != "mini" || l.Len() != 2 {
		t.Errorf("layout %q with %d keys", l.Name(), l.Len())
	}
	if p, _ := l.Lookup("."); p != geom.Pt(0.75, 0.35) {
		t.Errorf(". = %v", p)
	}
}

func TestReadTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "name = "},
		{"unknown field", "[keys]\na = { x = 0.1, y = 0.2, z = 0.3 }"},
		{"no keys", `name = "empty"`},
		{"bad key name", "[keys]\n\"a b\" = { x = 0.1, y = 0.2 }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTOML(strings.NewReader(tt.src)); !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("ReadTOML() error = %v, want %s", err, errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML() error: %v", err)
	}
	l, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML() error: %v\n%s", err, buf.String())
	}
	for _, k := range Default().Keys() {
		want, _ := Default().Lookup(k)
		if got, _ := l.Lookup(k); got != want {
			t.Errorf("key %q: got %v, want %v", k, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	gridPath := filepath.Join(dir, "wide.grid")
	if err := os.WriteFile(gridPath, []byte("grid 2 1\nrow k*2"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(gridPath)
	if err != nil {
		t.Fatalf("Load(grid) error: %v", err)
	}
	if l.Name() != "wide" {
		t.Errorf("grid layout name = %q, want wide", l.Name())
	}
	if p, _ := l.Lookup("k"); p != geom.Pt(0.5, 0.5) {
		t.Errorf("k = %v", p)
	}

	tomlPath := filepath.Join(dir, "plain.toml")
	if err := os.WriteFile(tomlPath, []byte("[keys]\nz = { x = 0.5, y = 0.5 }"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err = Load(tomlPath)
	if err != nil {
		t.Fatalf("Load(toml) error: %v", err)
	}
	if l.Name() != "plain" {
		t.Errorf("unnamed TOML layout should be named after file, got %q", l.Name())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Parse("layout.yaml", nil); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unsupported extension error = %v", err)
	}
}

func TestNeedsCalibration(t *testing.T) {
	if !NeedsCalibration("a/b.GRID") || NeedsCalibration("b.toml") {
		t.Error("NeedsCalibration misclassified extensions")
	}
}
