package logformat

import (
	"regexp"
	"sync"
)

const censorSentinel = "<*>"

// censorPatternCache memoizes compiled censor patterns, keyed by pattern
// text, since the same LogFormat's patterns are applied to every line
// from concurrent chunk workers.
var censorPatternCacheMap sync.Map // map[string]*regexp.Regexp

func censorPatternCache(pattern string) (*regexp.Regexp, error) {
	if cached, ok := censorPatternCacheMap.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := censorPatternCacheMap.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// ApplyCensor replaces every match of each pattern, in order, with the
// "<*>" sentinel. A leading space is prepended to content before the
// first pattern is applied, so a pattern that expects a boundary
// character before its match can also match at the start of content.
// The returned string keeps that leading space.
func ApplyCensor(content string, patterns []string) (string, error) {
	out := " " + content
	for _, p := range patterns {
		re, err := censorPatternCache(p)
		if err != nil {
			return "", err
		}
		out = re.ReplaceAllString(out, censorSentinel)
	}
	return out, nil
}
