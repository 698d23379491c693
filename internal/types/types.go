// Package types holds the shared data model for the log-template mining
// core: tokens, and the pair/triple key encoding used by the n-gram
// dictionaries.
package types

import "strings"

// KeySeparator joins tokens inside a Pair/Triple key. Reserved: a token
// containing it would collide with a neighboring token boundary, so
// PairKey/TripleKey reject any token containing it by returning ok=false.
const KeySeparator = "^"

// Token is a non-empty maximal substring of a censored Content field,
// delimited by whitespace. Tokens are opaque; equality is byte-wise.
type Token = string

// ContainsSeparator reports whether a token would corrupt key encoding.
func ContainsSeparator(t Token) bool {
	return strings.Contains(t, KeySeparator)
}

// PairKey serializes a 2-token window as "t1^t2". Returns false if either
// token contains the reserved separator — callers must drop such windows
// rather than risk a collision.
func PairKey(t1, t2 Token) (string, bool) {
	if ContainsSeparator(t1) || ContainsSeparator(t2) {
		return "", false
	}
	return t1 + KeySeparator + t2, true
}

// TripleKey serializes a 3-token window as "t1^t2^t3". Returns false if
// any token contains the reserved separator.
func TripleKey(t1, t2, t3 Token) (string, bool) {
	if ContainsSeparator(t1) || ContainsSeparator(t2) || ContainsSeparator(t3) {
		return "", false
	}
	return t1 + KeySeparator + t2 + KeySeparator + t3, true
}

// LogFormatName identifies one of the closed set of built-in log dialects,
// or a custom format loaded at runtime.
type LogFormatName string

const (
	FormatLinux     LogFormatName = "Linux"
	FormatOpenStack LogFormatName = "OpenStack"
	FormatSpark     LogFormatName = "Spark"
	FormatHDFS      LogFormatName = "HDFS"
	FormatHPC       LogFormatName = "HPC"
	FormatProxifier LogFormatName = "Proxifier"
	FormatAndroid   LogFormatName = "Android"
	FormatHealthApp LogFormatName = "HealthApp"
)
