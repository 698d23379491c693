package pkgdict

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/standardbeagle/logram/internal/debug"
	logerrors "github.com/standardbeagle/logram/internal/errors"
)

var keyValueRe = regexp.MustCompile(`^(?P<key>[\w-]+): (?P<value>.+)`)

// ParseInstalled reads a control file listing only installed packages and
// their versions: a "Package:" line switches the current package, and a
// following "Version:" line records its installed version.
func (s *Store) ParseInstalled(path string) error {
	return s.parseStanzas(path, func(num int, key, value string) error {
		if key == "Version" {
			s.SetInstalledVersion(num, strings.TrimSpace(value))
		}
		return nil
	})
}

// ParsePackages reads a control file listing available packages: each
// "Package:" stanza may carry Version, MD5sum, and Depends lines.
func (s *Store) ParsePackages(path string) error {
	return s.parseStanzas(path, func(num int, key, value string) error {
		switch key {
		case "Version":
			s.SetAvailableVersion(num, strings.TrimSpace(value))
		case "MD5sum":
			s.SetMD5(num, strings.TrimSpace(value))
		case "Depends":
			deps, err := s.parseDependencies(value)
			if err != nil {
				return err
			}
			s.SetDependencies(num, deps)
		}
		return nil
	})
}

// parseStanzas walks a Key: Value control file line by line, tracking
// the current package id across a "Package:" line and invoking onKeyVal
// for every other recognized key.
func (s *Store) parseStanzas(path string, onKeyVal func(num int, key, value string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return logerrors.NewIOError("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	currentNum := -1
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		m := keyValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, value := m[keyValueRe.SubexpIndex("key")], m[keyValueRe.SubexpIndex("value")]

		if key == "Package" {
			currentNum = s.GetPackageNumInserting(value)
			continue
		}
		if currentNum < 0 {
			// A stanza field with no preceding Package: line is a
			// MalformedLine: non-fatal, so the line is skipped and not
			// counted, and the rest of the file is still parsed.
			malformed := logerrors.NewMalformedLineError(path, lineNum, line, "stanza field before any Package: line")
			debug.LogPkgdict("%v", malformed)
			continue
		}
		if err := onKeyVal(currentNum, key, value); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return logerrors.NewIOError("scan", path, err)
	}
	return nil
}

var pkgVerRe = regexp.MustCompile(`^(?P<pkg>[\w.+-]+)(?: \((?P<op><<|<=|=|>=|>>)\s+(?P<ver>.*)\))?$`)

// parseDependencies splits a Depends: value into conjuncts (",") and, for
// each, a disjunction of alternatives ("|"), matching each alternative
// against "name [(op version)]".
func (s *Store) parseDependencies(value string) ([]Dependency, error) {
	conjuncts := strings.Split(value, ",")
	deps := make([]Dependency, 0, len(conjuncts))

	for _, conjunct := range conjuncts {
		alternatives := strings.Split(conjunct, "|")
		dep := make(Dependency, 0, len(alternatives))

		for _, alt := range alternatives {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				continue
			}
			m := pkgVerRe.FindStringSubmatch(alt)
			if m == nil {
				// A dependency atom that matches neither "name" nor
				// "name (op version)" is a MalformedLine: skip just this
				// alternative and keep parsing the rest of the
				// disjunction/conjunction, rather than failing the whole
				// Depends: field.
				malformed := logerrors.NewMalformedLineError("", 0, alt, "dependency atom does not match \"name [(op version)]\"")
				debug.LogPkgdict("%v", malformed)
				continue
			}
			pkgName := m[pkgVerRe.SubexpIndex("pkg")]
			rvp := RelVersionedPackage{PackageNum: s.GetPackageNumInserting(pkgName)}
			if op := m[pkgVerRe.SubexpIndex("op")]; op != "" {
				rvp.HasVersion = true
				rvp.Rel = RelOp(op)
				rvp.Version = m[pkgVerRe.SubexpIndex("ver")]
			}
			dep = append(dep, rvp)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
