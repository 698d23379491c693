package resolver

import (
	"testing"

	"github.com/standardbeagle/logram/internal/pkgdict"
)

// buildStore wires up a pkgdict.Store directly (bypassing the control-file
// parser) so each test controls exactly the package graph it needs.
func buildStore() *pkgdict.Store {
	return pkgdict.NewStore()
}

func TestDependencySatisfactionScenario(t *testing.T) {
	// A depends on B (>= 2.0) | C. B installed at 1.0, C not installed.
	s := buildStore()
	a := s.GetPackageNumInserting("A")
	b := s.GetPackageNumInserting("B")
	_ = s.GetPackageNumInserting("C")
	s.SetInstalledVersion(b, "1.0")
	s.SetDependencies(a, []pkgdict.Dependency{
		{
			{PackageNum: b, HasVersion: true, Rel: pkgdict.RelGreaterOrEqual, Version: "2.0"},
			{PackageNum: s.GetPackageNumInserting("C")},
		},
	})

	r := New(s)
	deps, _ := s.GetDependencies(a)
	if _, satisfied := r.DepIsSatisfied(deps[0]); satisfied {
		t.Error("expected the B|C dependency to be unsatisfied")
	}

	install := r.ComputeHowToInstall("A")
	if len(install) != 1 || install[0] != b {
		t.Errorf("expected compute_how_to_install to pick B (installed-wrong-version), got %v", install)
	}
}

func TestTransitiveFirstAlternativeScenario(t *testing.T) {
	// X depends on (Y | Z); Y depends on W. transitive_dep_solution("X")
	// must return [Y, W] in discovery order; Z is never visited.
	s := buildStore()
	x := s.GetPackageNumInserting("X")
	y := s.GetPackageNumInserting("Y")
	z := s.GetPackageNumInserting("Z")
	w := s.GetPackageNumInserting("W")

	s.SetDependencies(x, []pkgdict.Dependency{
		{{PackageNum: y}, {PackageNum: z}},
	})
	s.SetDependencies(y, []pkgdict.Dependency{
		{{PackageNum: w}},
	})

	r := New(s)
	got := r.TransitiveDepSolution("X")
	want := []int{y, w}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	for _, id := range got {
		if id == z {
			t.Error("expected Z to never be visited")
		}
	}
}

func TestDescribeDependencyNotSatisfied(t *testing.T) {
	s := buildStore()
	a := s.GetPackageNumInserting("A")
	b := s.GetPackageNumInserting("B")
	s.SetDependencies(a, []pkgdict.Dependency{
		{{PackageNum: b, HasVersion: true, Rel: pkgdict.RelGreaterOrEqual, Version: "2.0"}},
	})

	r := New(s)
	deps, _ := s.GetDependencies(a)
	lines := r.DescribeDependency(deps[0])
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != `- dependency B "(>= 2.0)"` {
		t.Errorf("unexpected first line: %q", lines[0].Text)
	}
	if lines[1].Text != "-> not satisfied" {
		t.Errorf("unexpected second line: %q", lines[1].Text)
	}
}

func TestDescribeDependencySatisfied(t *testing.T) {
	s := buildStore()
	a := s.GetPackageNumInserting("A")
	b := s.GetPackageNumInserting("B")
	s.SetInstalledVersion(b, "2.5")
	s.SetDependencies(a, []pkgdict.Dependency{
		{{PackageNum: b, HasVersion: true, Rel: pkgdict.RelGreaterOrEqual, Version: "2.0"}},
	})

	r := New(s)
	deps, _ := s.GetDependencies(a)
	lines := r.DescribeDependency(deps[0])
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1].Text != "+ B satisfied by installed version 2.5" {
		t.Errorf("unexpected satisfaction line: %q", lines[1].Text)
	}
}
