package errors

import (
	"errors"
	"testing"
	"time"
)

func TestConfigurationError(t *testing.T) {
	underlying := errors.New("unknown placeholder <Foo>")
	err := NewConfigurationError("log_format", underlying)

	if err.Field != "log_format" {
		t.Errorf("Expected Field to be 'log_format', got %s", err.Field)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "configuration error for log_format: unknown placeholder <Foo>"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestIOError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewIOError("read", "/var/log/syslog", underlying)

	if err.Path != "/var/log/syslog" {
		t.Errorf("Expected Path to be '/var/log/syslog', got %s", err.Path)
	}

	if err.Operation != "read" {
		t.Errorf("Expected Operation to be 'read', got %s", err.Operation)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "io read failed for /var/log/syslog: permission denied"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestMalformedLineError(t *testing.T) {
	err := NewMalformedLineError("/var/log/syslog", 42, "garbled ^ line", "token contains '^'")

	if err.LineNum != 42 {
		t.Errorf("Expected LineNum to be 42, got %d", err.LineNum)
	}

	if err.RawText != "garbled ^ line" {
		t.Errorf("Expected RawText to be 'garbled ^ line', got %s", err.RawText)
	}

	expectedMsg := "malformed line at /var/log/syslog:42: token contains '^'"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestNetworkError(t *testing.T) {
	underlying := errors.New("connection reset by peer")
	err := NewNetworkError("curl", "7.68.0-1", underlying)

	if err.Package != "curl" || err.Version != "7.68.0-1" {
		t.Errorf("Expected Package/Version to be curl/7.68.0-1, got %s/%s", err.Package, err.Version)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "network error verifying curl version 7.68.0-1: connection reset by peer"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPError("curl", "7.68.0-1", 404)

	if err.StatusCode != 404 {
		t.Errorf("Expected StatusCode to be 404, got %d", err.StatusCode)
	}

	expectedMsg := "got error 404 on request for package curl version 7.68.0-1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestResolverInconsistency(t *testing.T) {
	err := NewResolverInconsistency("libfoo-missing")

	if err.PackageName != "libfoo-missing" {
		t.Errorf("Expected PackageName to be 'libfoo-missing', got %s", err.PackageName)
	}

	expectedMsg := `dependency references unknown package "libfoo-missing"`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestMultiError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")
	err3 := errors.New("error 3")

	multiErr := NewMultiError([]error{err1, err2, err3})

	if len(multiErr.Errors) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(multiErr.Errors))
	}

	errMsg := multiErr.Error()
	if len(errMsg) < 10 || errMsg[:10] != "3 errors: " {
		t.Errorf("Expected message to start with '3 errors: ', got %q", errMsg)
	}

	singleErr := NewMultiError([]error{err1})
	if singleErr.Error() != "error 1" {
		t.Errorf("Expected 'error 1', got %q", singleErr.Error())
	}

	emptyErr := NewMultiError([]error{})
	if emptyErr.Error() != "no errors" {
		t.Errorf("Expected 'no errors', got %q", emptyErr.Error())
	}

	nilFiltered := NewMultiError([]error{err1, nil, err2, nil})
	if len(nilFiltered.Errors) != 2 {
		t.Errorf("Expected 2 errors after filtering nil, got %d", len(nilFiltered.Errors))
	}

	unwrapped := multiErr.Unwrap()
	if len(unwrapped) != 3 {
		t.Errorf("Expected 3 unwrapped errors, got %d", len(unwrapped))
	}
}

func TestErrorTimestamp(t *testing.T) {
	err := NewConfigurationError("test", errors.New("test"))
	if err.Timestamp.IsZero() {
		t.Errorf("Expected non-zero timestamp")
	}

	now := time.Now()
	if err.Timestamp.After(now) || now.Sub(err.Timestamp) > time.Second {
		t.Errorf("Timestamp seems incorrect: %v", err.Timestamp)
	}
}

func BenchmarkConfigurationError(b *testing.B) {
	underlying := errors.New("underlying error")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		err := NewConfigurationError("log_format", underlying)
		_ = err.Error()
	}
}
