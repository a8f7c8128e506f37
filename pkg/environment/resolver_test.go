package environment

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/condadeps/pkg/errors"
	"github.com/matzehuels/condadeps/pkg/manifest"
	"github.com/matzehuels/condadeps/pkg/purl"
)

func resolveString(t *testing.T, src string) *Resolution {
	t.Helper()
	res, err := Resolve([]byte(src))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return res
}

func keys(r manifest.Resolved) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func TestResolve_MixedDescriptor(t *testing.T) {
	res := resolveString(t, `
dependencies:
  - python=3.8
  - pip:
    - Flask==2.0.1
    - requests
`)

	want := []string{
		"pkg:conda/python@3.8",
		"pkg:pypi/flask@2.0.1",
		"pkg:pypi/requests",
	}
	if got := keys(res.Resolved); !slices.Equal(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for k, e := range res.Resolved {
		if e.PackageURL != k {
			t.Errorf("entry %q has package_url %q", k, e.PackageURL)
		}
		if e.Relationship != "direct" {
			t.Errorf("entry %q relationship = %q, want direct", k, e.Relationship)
		}
		if e.Dependencies == nil || len(e.Dependencies) != 0 {
			t.Errorf("entry %q dependencies = %#v, want empty", k, e.Dependencies)
		}
	}
}

func TestResolve_SingleBareName(t *testing.T) {
	res := resolveString(t, "dependencies: [numpy]\n")

	if got := keys(res.Resolved); !slices.Equal(got, []string{"pkg:conda/numpy"}) {
		t.Errorf("keys = %v, want [pkg:conda/numpy]", got)
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		eco  purl.Ecosystem
		spec string
		want string
	}{
		{purl.Conda, "python=3.8", "pkg:conda/python@3.8"},
		{purl.Conda, "numpy", "pkg:conda/numpy"},
		{purl.Conda, "numpy=", "pkg:conda/numpy"},
		{purl.Conda, "pytorch=1.10=py3.8_cuda11", "pkg:conda/pytorch@1.10=py3.8_cuda11"},
		{purl.Conda, "python==3.8", "pkg:conda/python@=3.8"},
		{purl.Conda, "Py_Lib=1.0", "pkg:conda/Py_Lib@1.0"},
		{purl.PyPI, "Name_Extra==1.2.3", "pkg:pypi/name-extra@1.2.3"},
		{purl.PyPI, "Name_Extra", "pkg:pypi/name-extra"},
		{purl.PyPI, "requests==", "pkg:pypi/requests"},
		{purl.PyPI, "pkg==1.0==extra", "pkg:pypi/pkg@1.0==extra"},
		{purl.PyPI, "single=1.0", "pkg:pypi/single=1.0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eco)+"/"+tt.spec, func(t *testing.T) {
			id, err := Identify(tt.eco, tt.spec)
			if err != nil {
				t.Fatalf("Identify: %v", err)
			}
			if got := id.String(); got != tt.want {
				t.Errorf("Identify(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestIdentify_EmptyName(t *testing.T) {
	for _, tt := range []struct {
		eco  purl.Ecosystem
		spec string
	}{
		{purl.Conda, ""},
		{purl.Conda, "=1.0"},
		{purl.PyPI, "==2.0"},
		{purl.PyPI, "  "},
	} {
		_, err := Identify(tt.eco, tt.spec)
		if !errors.Is(err, errors.ErrCodeMalformedDeclaration) {
			t.Errorf("Identify(%s, %q) code = %v, want %v", tt.eco, tt.spec, errors.GetCode(err), errors.ErrCodeMalformedDeclaration)
		}
	}
}

func TestIdentify_UnknownEcosystem(t *testing.T) {
	if _, err := Identify("npm", "left-pad"); err == nil {
		t.Error("expected error for unknown ecosystem")
	}
}

func TestResolve_Duplicates(t *testing.T) {
	res := resolveString(t, `
dependencies:
  - requests
  - numpy=1.21
  - numpy=1.21
  - pip:
    - Requests
    - requests
    - my_pkg==1.0
    - My-Pkg==1.0
`)

	want := []string{
		"pkg:conda/numpy@1.21",
		"pkg:conda/requests",
		"pkg:pypi/my-pkg@1.0",
		"pkg:pypi/requests",
	}
	if got := keys(res.Resolved); !slices.Equal(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	wantDup := []string{"pkg:conda/numpy@1.21", "pkg:pypi/requests", "pkg:pypi/my-pkg@1.0"}
	if !slices.Equal(res.Duplicates, wantDup) {
		t.Errorf("Duplicates = %v, want %v", res.Duplicates, wantDup)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "environment.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := Resolve(data)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := Resolve(data)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if !maps.EqualFunc(first.Resolved, second.Resolved, func(a, b manifest.Entry) bool {
		return a.PackageURL == b.PackageURL &&
			a.Relationship == b.Relationship &&
			slices.Equal(a.Dependencies, b.Dependencies)
	}) {
		t.Error("resolving the same content twice produced different mappings")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"invalid yaml", "dependencies: [numpy\n", errors.ErrCodeDescriptorParse},
		{"tab indentation", "dependencies:\n\t- numpy\n", errors.ErrCodeDescriptorParse},
		{"empty document", "", errors.ErrCodeMissingDependencies},
		{"comments only", "# nothing here\n", errors.ErrCodeMissingDependencies},
		{"no dependencies key", "name: env\nchannels: [defaults]\n", errors.ErrCodeMissingDependencies},
		{"dependencies null", "dependencies:\n", errors.ErrCodeMissingDependencies},
		{"dependencies scalar", "dependencies: numpy\n", errors.ErrCodeMissingDependencies},
		{"dependencies mapping", "dependencies:\n  numpy: 1.0\n", errors.ErrCodeMissingDependencies},
		{"top-level sequence", "- numpy\n", errors.ErrCodeMissingDependencies},
		{"number entry", "dependencies:\n  - numpy\n  - 42\n", errors.ErrCodeMalformedDeclaration},
		{"null entry", "dependencies:\n  - numpy\n  - null\n", errors.ErrCodeMalformedDeclaration},
		{"mapping without pip", "dependencies:\n  - channel: conda-forge\n", errors.ErrCodeMalformedDeclaration},
		{"pip with number", "dependencies:\n  - pip:\n    - flask\n    - 3\n", errors.ErrCodeMalformedDeclaration},
		{"empty conda name", "dependencies:\n  - \"=1.0\"\n", errors.ErrCodeMalformedDeclaration},
		{"empty pip name", "dependencies:\n  - pip: [\"==1.0\"]\n", errors.ErrCodeMalformedDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve([]byte(tt.src))
			if err == nil {
				t.Fatalf("expected %s, got %d entries", tt.code, len(res.Resolved))
			}
			if res != nil {
				t.Error("partial resolution returned alongside error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestResolve_EmptyList(t *testing.T) {
	res := resolveString(t, "dependencies: []\n")
	if len(res.Resolved) != 0 {
		t.Errorf("len = %d, want 0", len(res.Resolved))
	}
}

func TestResolveFile(t *testing.T) {
	res, err := ResolveFile(filepath.Join("testdata", "environment.yaml"))
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}

	want := []string{
		"pkg:conda/cudatoolkit@11.0",
		"pkg:conda/pip",
		"pkg:conda/python@3.8",
		"pkg:conda/pytorch@1.10",
		"pkg:conda/torchvision",
		"pkg:pypi/configargparse@1.5.3",
		"pkg:pypi/einops@0.3.2",
		"pkg:pypi/imageio-ffmpeg@0.4.5",
		"pkg:pypi/imageio@2.10.4",
		"pkg:pypi/kornia@0.6.1",
		"pkg:pypi/matplotlib@3.5.0",
		"pkg:pypi/networkx@2.5",
		"pkg:pypi/ninja",
		"pkg:pypi/open3d@0.13.0",
		"pkg:pypi/opencv-python@4.5.4.58",
		"pkg:pypi/plyfile@0.7.2",
		"pkg:pypi/pycollada@0.7.1",
		"pkg:pypi/pyglet@1.5.10",
		"pkg:pypi/pymcubes@0.1.2",
		"pkg:pypi/pytorch-lightning@1.5.2",
		"pkg:pypi/setuptools@58.2.0",
		"pkg:pypi/torch-optimizer@0.3.0",
		"pkg:pypi/trimesh@3.9.1",
	}
	if got := keys(res.Resolved); !slices.Equal(got, want) {
		t.Errorf("keys =\n%v\nwant\n%v", got, want)
	}
	if len(res.Duplicates) != 0 {
		t.Errorf("Duplicates = %v, want none", res.Duplicates)
	}
}

func TestResolveFile_Missing(t *testing.T) {
	_, err := ResolveFile(filepath.Join(t.TempDir(), "environment.yml"))
	if !errors.Is(err, errors.ErrCodeDescriptorNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDescriptorNotFound)
	}
}
