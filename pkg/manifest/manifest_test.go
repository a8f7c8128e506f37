package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/condadeps/pkg/errors"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("pkg:conda/numpy")

	if e.PackageURL != "pkg:conda/numpy" {
		t.Errorf("PackageURL = %q, want %q", e.PackageURL, "pkg:conda/numpy")
	}
	if e.Relationship != "direct" {
		t.Errorf("Relationship = %q, want %q", e.Relationship, "direct")
	}
	if e.Dependencies == nil || len(e.Dependencies) != 0 {
		t.Errorf("Dependencies = %#v, want empty non-nil slice", e.Dependencies)
	}
}

func TestEntryJSON(t *testing.T) {
	data, err := json.Marshal(NewEntry("pkg:pypi/flask@2.0.1"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"package_url":"pkg:pypi/flask@2.0.1","relationship":"direct","dependencies":[]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestNew(t *testing.T) {
	path := writeDescriptor(t)
	resolved := Resolved{"pkg:conda/numpy": NewEntry("pkg:conda/numpy")}

	m, err := New(path, resolved)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if m.Name != path {
		t.Errorf("Name = %q, want %q", m.Name, path)
	}
	if m.File.SourceLocation != path {
		t.Errorf("SourceLocation = %q, want %q", m.File.SourceLocation, path)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestNewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yml")

	_, err := New(path, Resolved{})
	if err == nil {
		t.Fatal("expected error for missing descriptor")
	}
	if !errors.Is(err, errors.ErrCodeDescriptorNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDescriptorNotFound)
	}
}

func TestNewEmptyPath(t *testing.T) {
	_, err := New("", Resolved{})
	if !errors.Is(err, errors.ErrCodeDescriptorNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDescriptorNotFound)
	}
}

func TestNewNilResolved(t *testing.T) {
	m, err := New(writeDescriptor(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := out["resolved"].(map[string]any); !ok {
		t.Errorf("resolved = %#v, want object", out["resolved"])
	}
}

func TestManifestJSONShape(t *testing.T) {
	path := writeDescriptor(t)
	m, err := New(path, Resolved{"pkg:conda/python@3.8": NewEntry("pkg:conda/python@3.8")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out struct {
		Resolved map[string]Entry `json:"resolved"`
		Name     string           `json:"name"`
		File     struct {
			SourceLocation string `json:"source_location"`
		} `json:"file"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if out.Name != path || out.File.SourceLocation != path {
		t.Errorf("name/source_location = %q/%q, want %q", out.Name, out.File.SourceLocation, path)
	}
	if e, ok := out.Resolved["pkg:conda/python@3.8"]; !ok || e.Relationship != "direct" {
		t.Errorf("resolved entry = %#v", e)
	}
}

func TestPackageURLs(t *testing.T) {
	m := &Manifest{Resolved: Resolved{
		"pkg:pypi/requests":    NewEntry("pkg:pypi/requests"),
		"pkg:conda/python@3.8": NewEntry("pkg:conda/python@3.8"),
		"pkg:pypi/flask@2.0.1": NewEntry("pkg:pypi/flask@2.0.1"),
		"pkg:conda/numpy@1.21": NewEntry("pkg:conda/numpy@1.21"),
	}}

	want := []string{
		"pkg:conda/numpy@1.21",
		"pkg:conda/python@3.8",
		"pkg:pypi/flask@2.0.1",
		"pkg:pypi/requests",
	}
	if got := m.PackageURLs(); !slices.Equal(got, want) {
		t.Errorf("PackageURLs() = %v, want %v", got, want)
	}
}

func writeDescriptor(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environment.yml")
	if err := os.WriteFile(path, []byte("dependencies:\n  - numpy\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
