// Package source loads raw catalog entries from local files.
//
// A catalog entry maps a course identifier to its raw prerequisite text.
// Two file formats are supported: flat text ("CODE : text" per line) and
// TOML (a [courses] table). [Load] picks the format from the filename.
package source

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

// Load reads catalog entries from path, choosing the format by file
// extension: .toml files use [LoadTOML], everything else uses [LoadFlat].
func Load(path string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(path)
	}
	return LoadFlat(path)
}

// LoadFlat reads a flat-text catalog. Each non-blank line has the form
//
//	CODE : raw prerequisite text
//
// The prerequisite text may be empty (a course with no prerequisites).
// Lines starting with '#' are comments. If the same course appears on
// several lines, the prerequisite texts are merged with "and" so both
// constraints apply.
func LoadFlat(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, text, found := strings.Cut(line, ":")
		if !found {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s:%d: missing ':' separator", filepath.Base(path), lineNo)
		}
		code = strings.TrimSpace(code)
		text = strings.TrimSpace(text)
		if code == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s:%d: empty course code", filepath.Base(path), lineNo)
		}

		entries[code] = mergeEntry(entries[code], text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// tomlCatalog mirrors the on-disk TOML layout:
//
//	[courses]
//	CS101 = ""
//	CS201 = "CS101"
type tomlCatalog struct {
	Courses map[string]string `toml:"courses"`
}

// LoadTOML reads a TOML catalog with a [courses] table mapping course
// codes to raw prerequisite text.
func LoadTOML(path string) (map[string]string, error) {
	var cat tomlCatalog
	if _, err := toml.DecodeFile(path, &cat); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode catalog %s", filepath.Base(path))
	}
	if cat.Courses == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog has no [courses] table")
	}
	return cat.Courses, nil
}

// mergeEntry combines the prerequisite text of a repeated course entry
// with any text seen earlier. Both constraints must hold, so they are
// joined with "and".
func mergeEntry(prev, text string) string {
	if prev == "" {
		return text
	}
	if text == "" {
		return prev
	}
	return prev + " and " + text
}
