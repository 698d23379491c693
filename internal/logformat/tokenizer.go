package logformat

import "strings"

// Tokenize matches a trimmed log line against the format's compiled
// grammar, extracts the Content field, censors it, and splits the
// censored content on whitespace. A line that does not match the
// grammar yields an empty token list rather than an error — malformed
// lines are skipped by the caller, not fatal to the run.
func Tokenize(line string, lf LogFormat) ([]string, error) {
	re, err := CompileGrammar(lf.Template)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(line)
	match := re.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, nil
	}

	idx := re.SubexpIndex("Content")
	if idx < 0 || idx >= len(match) {
		return nil, nil
	}
	content := match[idx]

	censored, err := ApplyCensor(content, lf.CensorPatterns)
	if err != nil {
		return nil, err
	}

	censored = strings.TrimSpace(censored)
	if censored == "" {
		return []string{}, nil
	}
	return strings.Fields(censored), nil
}
