// Package verifier issues concurrent checksum-verification requests
// against a remote package index and reports match/mismatch per
// package.
package verifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/logram/internal/debug"
	logerrors "github.com/standardbeagle/logram/internal/errors"
	"github.com/standardbeagle/logram/internal/metrics"
	"github.com/standardbeagle/logram/internal/pkgdict"
)

// Outcome is one verification result, either a match/mismatch report or
// a transport/HTTP failure.
type Outcome struct {
	Package    string
	Version    string
	Matches    bool
	Err        error
	requestKey int64
}

// request is one enqueued (package, version) pair awaiting Execute.
type request struct {
	key     int64
	pkgNum  int
	pkg     string
	version string
}

var requestKeyCounter atomic.Int64

// Verifier batches checksum-verification requests and issues them
// concurrently against a checksum service. The zero value is not ready
// to use; construct with New. Callers must call Close (there is no
// finalizer in Go) to guarantee any requests enqueued but never
// Execute-d still run, matching the drop-runs-execute contract of the
// system this core was modeled on.
type Verifier struct {
	server     string
	store      *pkgdict.Store
	httpClient *http.Client
	pollTime   time.Duration
	stats      *metrics.VerifyStats

	mu       sync.Mutex
	requests []request
	closed   bool
}

// New returns a Verifier targeting server (host:port, no scheme) and
// backed by store for looking up each package's locally known MD5.
func New(server string, store *pkgdict.Store, pollTime time.Duration, stats *metrics.VerifyStats) *Verifier {
	return &Verifier{
		server:     server,
		store:      store,
		httpClient: &http.Client{},
		pollTime:   pollTime,
		stats:      stats,
	}
}

// Enqueue queues a verification request for pkg at version. Requests are
// correlated to their outcome by a monotonically increasing key assigned
// here, not at Execute time.
func (v *Verifier) Enqueue(pkgNum int, pkg, version string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.requests = append(v.requests, request{
		key:     requestKeyCounter.Add(1),
		pkgNum:  pkgNum,
		pkg:     pkg,
		version: version,
	})
	if v.stats != nil {
		v.stats.Enqueued.Add(1)
	}
}

// Execute issues every outstanding request concurrently, waits up to the
// configured poll timeout for each to complete, and returns one Outcome
// per request. Outcomes are returned in no particular order; callers
// correlating by package should use Outcome.Package/Version.
func (v *Verifier) Execute(ctx context.Context) ([]Outcome, error) {
	v.mu.Lock()
	pending := v.requests
	v.requests = nil
	v.mu.Unlock()

	if len(pending) == 0 {
		return nil, nil
	}

	debug.LogVerifier("issuing %d checksum request(s) against %s", len(pending), v.server)

	outcomes := make([]Outcome, len(pending))
	var wg sync.WaitGroup
	for i, req := range pending {
		i, req := i, req
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = v.issue(ctx, req)
		}()
	}
	wg.Wait()

	if v.stats != nil {
		for _, o := range outcomes {
			switch {
			case o.Err != nil:
				v.stats.Errored.Add(1)
			case o.Matches:
				v.stats.Succeeded.Add(1)
			default:
				v.stats.Mismatched.Add(1)
			}
		}
	}

	return outcomes, nil
}

// issue performs one bounded-timeout GET and compares the response body
// to the locally stored MD5 for req.pkgNum.
func (v *Verifier) issue(ctx context.Context, req request) Outcome {
	reqCtx, cancel := context.WithTimeout(ctx, v.pollTime)
	defer cancel()

	reqURL := fmt.Sprintf("http://%s/rest/v1/checksums/%s/%s", v.server, url.PathEscape(req.pkg), url.PathEscape(req.version))

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{Package: req.pkg, Version: req.version, Err: logerrors.NewNetworkError(req.pkg, req.version, err), requestKey: req.key}
	}

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return Outcome{Package: req.pkg, Version: req.version, Err: logerrors.NewNetworkError(req.pkg, req.version, err), requestKey: req.key}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Outcome{Package: req.pkg, Version: req.version, Err: logerrors.NewHTTPError(req.pkg, req.version, resp.StatusCode), requestKey: req.key}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Package: req.pkg, Version: req.version, Err: logerrors.NewNetworkError(req.pkg, req.version, err), requestKey: req.key}
	}

	localMD5, _ := v.store.GetMD5(req.pkgNum)
	matches := strings.TrimSpace(string(body)) == localMD5

	return Outcome{Package: req.pkg, Version: req.version, Matches: matches, requestKey: req.key}
}

// Close drains any requests that were enqueued but never Executed. Safe
// to call more than once.
func (v *Verifier) Close(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	v.mu.Unlock()

	_, err := v.Execute(ctx)
	return err
}
