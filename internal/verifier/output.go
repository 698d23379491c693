package verifier

import (
	"fmt"

	logerrors "github.com/standardbeagle/logram/internal/errors"
)

// OutputLine renders o as the human-readable line test scrapers depend
// on: `verifying {pkg}, matches: {true|false}` for a completed request,
// or `got error {code} on request for package {pkg} version {ver}` for
// an HTTP-status failure. Unlike the reference this core was modeled on,
// which always reports matches: true, this always reports the actual
// comparison result.
func OutputLine(o Outcome) string {
	if httpErr, ok := o.Err.(*logerrors.HTTPError); ok {
		return fmt.Sprintf("got error %d on request for package %s version %s", httpErr.StatusCode, o.Package, o.Version)
	}
	if o.Err != nil {
		return fmt.Sprintf("got error on request for package %s version %s: %v", o.Package, o.Version, o.Err)
	}
	return fmt.Sprintf("verifying %s, matches: %t", o.Package, o.Matches)
}
