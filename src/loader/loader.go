// Package loader reads the text map description:
//
//	<width>
//	<height>
//	<rows>
//
// Each row is a string of characters where '1' is a live cell and anything else
// is a dead one. Spaces and tabs are only used for alignment and are dropped.
// Row i of the text becomes the column x = i of the grid, character j of the row
// becomes y = j.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is the map loaded when the requested one can't be found.
const DefaultPath = "map.txt"

var (
	// ErrMalformed is wrapped by every ParseError.
	ErrMalformed = errors.New("malformed map description")
	// ErrSourceNotFound is returned when neither the requested nor the fallback map exists.
	ErrSourceNotFound = errors.New("map source not found")
)

// ParseError describes the line which can't be mapped to the grid.
type ParseError struct {
	Line int // 1-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %s", ErrMalformed, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Description is the parsed map, Seed is indexed as Seed[x][y].
type Description struct {
	Width  int
	Height int
	Seed   [][]bool
}

// Loader loads the map files falling back to DefaultPath.
type Loader struct {
	DefaultPath string
	Logger      *log.Logger
}

// New returns the Loader with the given fallback path; an empty path means DefaultPath.
func New(defaultPath string) *Loader {
	if defaultPath == "" {
		defaultPath = DefaultPath
	}
	return &Loader{DefaultPath: defaultPath, Logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// Load reads and parses the map at path. When path doesn't exist, the fallback
// map is loaded instead; any other read error is returned as is.
func (l *Loader) Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path != l.DefaultPath {
		var fbErr error
		data, fbErr = os.ReadFile(l.DefaultPath)
		switch {
		case errors.Is(fbErr, fs.ErrNotExist):
			return Description{}, fmt.Errorf("%w: %s and %s: %v", ErrSourceNotFound, path, l.DefaultPath, fbErr)
		case fbErr != nil:
			return Description{}, fmt.Errorf("could not read map file %s: %w", l.DefaultPath, fbErr)
		}
		l.logf("could not find %s. Loaded %s instead", path, l.DefaultPath)
		path = l.DefaultPath
	} else if errors.Is(err, fs.ErrNotExist) {
		return Description{}, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	} else if err != nil {
		return Description{}, fmt.Errorf("could not read map file %s: %w", path, err)
	}

	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (l *Loader) logf(format string, v ...interface{}) {
	if l.Logger != nil {
		l.Logger.Printf(format, v...)
	}
}

// Parse parses the map description.
func Parse(r io.Reader) (Description, error) {
	var d Description
	s := bufio.NewScanner(r)
	//a row holds one char per cell plus the alignment blanks, no limit but the memory
	s.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	line := 0
	next := func() (string, bool) {
		if !s.Scan() {
			return "", false
		}
		line++
		return s.Text(), true
	}

	var err error
	if d.Width, err = parseDimension(next, 1, "width"); err != nil {
		return Description{}, err
	}
	if d.Height, err = parseDimension(next, 2, "height"); err != nil {
		return Description{}, err
	}
	d.Seed = make([][]bool, d.Width)
	b := make([]bool, d.Width*d.Height)
	for x := range d.Seed {
		start := d.Height * x
		d.Seed[x] = b[start : start+d.Height : start+d.Height]
	}

	for x := 0; ; x++ {
		row, ok := next()
		if !ok {
			break
		}
		row = stripBlanks(row)
		if row == "" {
			continue
		}
		if x >= d.Width {
			return Description{}, &ParseError{line, fmt.Sprintf("row %d is outside the width %d", x, d.Width)}
		}
		y := 0
		for _, ch := range row {
			if y >= d.Height {
				return Description{}, &ParseError{line, fmt.Sprintf("row %d is longer than the height %d", x, d.Height)}
			}
			d.Seed[x][y] = ch == '1'
			y++
		}
	}
	if err := s.Err(); err != nil {
		return Description{}, fmt.Errorf("could not read map: %w", err)
	}
	return d, nil
}

func parseDimension(next func() (string, bool), line int, name string) (int, error) {
	text, ok := next()
	if !ok {
		return 0, &ParseError{line, "missing " + name}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 31)
	if err != nil {
		return 0, &ParseError{line, fmt.Sprintf("%s %q is not a non-negative integer", name, text)}
	}
	if v == 0 {
		return 0, &ParseError{line, name + " must be at least 1"}
	}
	return int(v), nil
}

func stripBlanks(row string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, row)
}
