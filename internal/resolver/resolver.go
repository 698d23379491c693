// Package resolver implements transitive dependency-closure computation
// and installation planning over a pkgdict.Store.
package resolver

import (
	"github.com/standardbeagle/logram/internal/debug"
	"github.com/standardbeagle/logram/internal/pkgdict"
)

// Resolver answers dependency questions against a fixed package store.
type Resolver struct {
	store *pkgdict.Store
}

// New returns a Resolver backed by store.
func New(store *pkgdict.Store) *Resolver {
	return &Resolver{store: store}
}

// TransitiveDepSolution computes the transitive closure of packageName's
// dependencies, always taking a disjunction's first alternative and
// ignoring installed state entirely. Returns package ids in discovery
// order, each appearing once.
func (r *Resolver) TransitiveDepSolution(packageName string) []int {
	if !r.store.PackageExists(packageName) {
		return nil
	}
	num, _ := r.store.GetPackageNum(packageName)

	seen := make(map[int]bool)
	var order []int
	worklist := []int{num}

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		deps, ok := r.store.GetDependencies(current)
		if !ok {
			continue
		}
		for _, dep := range deps {
			if len(dep) == 0 {
				continue
			}
			firstAlt := dep[0].PackageNum
			if seen[firstAlt] {
				continue
			}
			seen[firstAlt] = true
			order = append(order, firstAlt)
			worklist = append(worklist, firstAlt)
		}
	}
	return order
}

// DepIsSatisfied reports whether some alternative in dep is installed,
// and if so, whether that alternative's version constraint (if any) is
// met by the installed version. Returns the satisfying package's id and
// true if satisfied.
func (r *Resolver) DepIsSatisfied(dep pkgdict.Dependency) (int, bool) {
	for _, alt := range dep {
		installedVersion, installed := r.store.GetInstalledVersion(alt.PackageNum)
		if !installed {
			continue
		}
		if !alt.HasVersion {
			return alt.PackageNum, true
		}
		if pkgdict.Satisfies(installedVersion, alt.Rel, alt.Version) {
			return alt.PackageNum, true
		}
	}
	return 0, false
}

// depSatisfiedByWrongVersion returns the alternatives in dep that are
// installed but fail their version constraint.
func (r *Resolver) depSatisfiedByWrongVersion(dep pkgdict.Dependency) []pkgdict.RelVersionedPackage {
	var wrong []pkgdict.RelVersionedPackage
	for _, alt := range dep {
		if !alt.HasVersion {
			continue
		}
		installedVersion, installed := r.store.GetInstalledVersion(alt.PackageNum)
		if !installed {
			continue
		}
		if !pkgdict.Satisfies(installedVersion, alt.Rel, alt.Version) {
			wrong = append(wrong, alt)
		}
	}
	return wrong
}

// pickAlternative chooses which alternative of an unsatisfied disjunction
// to install: among alternatives installed at the wrong version, the one
// with the highest installed version; failing that, among all
// alternatives, the one with the highest declared version constraint.
// Returns (0, false) if neither rule yields a candidate (e.g. every
// alternative is bare with none installed).
func (r *Resolver) pickAlternative(dep pkgdict.Dependency) (int, bool) {
	wrongVersions := r.depSatisfiedByWrongVersion(dep)
	if len(wrongVersions) > 0 {
		best := wrongVersions[0]
		bestVersion, _ := r.store.GetInstalledVersion(best.PackageNum)
		for _, alt := range wrongVersions[1:] {
			v, _ := r.store.GetInstalledVersion(alt.PackageNum)
			if pkgdict.CompareVersions(v, bestVersion) > 0 {
				best, bestVersion = alt, v
			}
		}
		return best.PackageNum, true
	}

	found := false
	var bestNum int
	var bestVersion string
	for _, alt := range dep {
		if !alt.HasVersion {
			continue
		}
		if !found || pkgdict.CompareVersions(alt.Version, bestVersion) > 0 {
			bestNum, bestVersion, found = alt.PackageNum, alt.Version, true
		}
	}
	return bestNum, found
}

// ComputeHowToInstall computes the set of package ids that must be
// installed to satisfy packageName's dependencies, resolving each
// unsatisfied disjunction with pickAlternative and transitively
// expanding the picked packages' own dependencies to a fixed point.
func (r *Resolver) ComputeHowToInstall(packageName string) []int {
	if !r.store.PackageExists(packageName) {
		debug.LogResolver("install plan requested for unknown package %q", packageName)
		return nil
	}
	num, _ := r.store.GetPackageNum(packageName)

	deps, ok := r.store.GetDependencies(num)
	if !ok {
		return nil
	}

	seen := make(map[int]bool)
	var toAdd []int

	consider := func(dep pkgdict.Dependency) {
		if _, satisfied := r.DepIsSatisfied(dep); satisfied {
			return
		}
		picked, ok := r.pickAlternative(dep)
		if !ok || seen[picked] {
			return
		}
		seen[picked] = true
		toAdd = append(toAdd, picked)
	}

	for _, dep := range deps {
		consider(dep)
	}

	for i := 0; i < len(toAdd); i++ {
		childDeps, ok := r.store.GetDependencies(toAdd[i])
		if !ok {
			continue
		}
		for _, dep := range childDeps {
			consider(dep)
		}
	}

	debug.LogResolver("install plan for %q: %d package(s) to add", packageName, len(toAdd))
	return toAdd
}
