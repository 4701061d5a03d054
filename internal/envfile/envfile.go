// Package envfile loads KEY=VALUE pairs from a local dotenv-style file into
// the process environment.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

type Entry struct {
	Key   string
	Value string
}

// maxLineSize bounds a single line; bufio.Scanner defaults to 64 KiB.
const maxLineSize = 1024 * 1024

// Load reads path and sets every entry that the process environment does not
// already define. A missing file is not an error. Malformed lines are skipped
// and reported in the returned error after the good entries are set.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	entries, parseErr := Parse(f)

	var errs []error
	if parseErr != nil {
		errs = append(errs, fmt.Errorf("parse %s: %w", path, parseErr))
	}
	for _, e := range entries {
		if _, ok := os.LookupEnv(e.Key); ok {
			continue
		}
		if err := os.Setenv(e.Key, e.Value); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", e.Key, err))
		}
	}
	return errors.Join(errs...)
}

// Parse returns the entries of r in file order. Comment lines and lines
// without '=' are skipped. A malformed line is skipped too; its problem is
// joined into the returned error alongside the entries that did parse.
func Parse(r io.Reader) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, ErrEmptyKey))
			continue
		}

		entries = append(entries, Entry{Key: key, Value: unquote(value)})
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("after line %d: %w", lineNo, err))
	}

	return entries, errors.Join(errs...)
}

func unquote(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	return strings.Trim(value, `'`)
}
