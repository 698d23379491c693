package pkgdict

import (
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"github.com/standardbeagle/logram/internal/debug"
)

// CompareVersions implements Debian's policy §5.6.12 version-comparison
// algorithm (epoch, then upstream version, then revision, with the
// alternating-digit/non-digit run comparison and "~" sorting before
// everything, including the empty string) via go-deb-version. Returns a
// negative, zero, or positive value analogous to strings.Compare.
//
// A control file is expected to carry well-formed Debian version strings
// throughout; if either string fails to parse as one, this falls back to
// a plain byte-wise comparison and logs the fallback rather than
// panicking or aborting the caller's resolution pass.
func CompareVersions(a, b string) int {
	va, errA := debversion.NewVersion(a)
	vb, errB := debversion.NewVersion(b)
	if errA != nil || errB != nil {
		debug.LogPkgdict("version parse fallback: a=%q (err=%v) b=%q (err=%v)", a, errA, b, errB)
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// Satisfies reports whether installedVersion satisfies the relation rel
// against constraintVersion.
func Satisfies(installedVersion string, rel RelOp, constraintVersion string) bool {
	c := CompareVersions(installedVersion, constraintVersion)
	switch rel {
	case RelStrictlyLess:
		return c < 0
	case RelLessOrEqual:
		return c <= 0
	case RelEqual:
		return c == 0
	case RelGreaterOrEqual:
		return c >= 0
	case RelStrictlyGreater:
		return c > 0
	default:
		return false
	}
}
