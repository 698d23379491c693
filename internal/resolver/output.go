package resolver

import (
	"fmt"

	"github.com/standardbeagle/logram/internal/pkgdict"
)

// DepLine describes one line of the "deps available" human-readable
// report: the "- dependency ..." line always emitted per alternative
// considered, followed by either a "+ ... satisfied ..." line or a
// "-> not satisfied" line once the whole disjunction has been checked.
type DepLine struct {
	Text string
}

// DescribeDependency renders the per-alternative "- dependency" lines for
// dep, plus the trailing satisfaction line. This reproduces the wire
// contract test scrapers rely on: `- dependency {name} "({op} {ver})"`
// (or the bare `- dependency {name} ` form for an unconstrained
// alternative), then either `+ {name} satisfied by installed version
// {ver}` or `-> not satisfied`.
func (r *Resolver) DescribeDependency(dep pkgdict.Dependency) []DepLine {
	var lines []DepLine
	for _, alt := range dep {
		name, _ := r.store.GetPackageName(alt.PackageNum)
		if alt.HasVersion {
			lines = append(lines, DepLine{fmt.Sprintf("- dependency %s \"(%s %s)\"", name, alt.Rel, alt.Version)})
		} else {
			lines = append(lines, DepLine{fmt.Sprintf("- dependency %s ", name)})
		}
	}

	satisfiedBy, ok := r.DepIsSatisfied(dep)
	if !ok {
		lines = append(lines, DepLine{"-> not satisfied"})
		return lines
	}

	name, _ := r.store.GetPackageName(satisfiedBy)
	installedVersion, _ := r.store.GetInstalledVersion(satisfiedBy)
	lines = append(lines, DepLine{fmt.Sprintf("+ %s satisfied by installed version %s", name, installedVersion)})
	return lines
}

// DepsAvailable renders the full report for every dependency disjunction
// of packageName.
func (r *Resolver) DepsAvailable(packageName string) []DepLine {
	if !r.store.PackageExists(packageName) {
		return nil
	}
	num, _ := r.store.GetPackageNum(packageName)
	deps, ok := r.store.GetDependencies(num)
	if !ok {
		return nil
	}

	var lines []DepLine
	for _, dep := range deps {
		lines = append(lines, r.DescribeDependency(dep)...)
	}
	return lines
}
