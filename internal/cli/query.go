// Package cli holds the parts of the search tools that are worth testing
// apart from main: query parsing, cache file handling and output format.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnterminated is returned for a quoted query without its closing
	// quote.
	ErrUnterminated = errors.New("unterminated quote")

	// ErrBadDistance is returned when the edit distance is not a
	// non-negative integer.
	ErrBadDistance = errors.New("edit distance must be a non-negative integer")
)

// Query is one parsed input line: the words to look up and the number of
// edits allowed for each.
type Query struct {
	Words []string
	K     int
}

// ParseQuery parses an input line. Three forms are accepted:
//
//	WORD [N]           one word, leading and trailing blanks dropped
//	'SOME WORDS' [N]   the quoted text as a single word, blanks included
//	"W1 W2 ..." [N]    each blank-separated word of the quoted text
//
// N defaults to 0. An empty line yields a query without words.
func ParseQuery(line string) (Query, error) {
	line = strings.TrimRight(line, "\r\n")

	if q := line[:min(1, len(line))]; q == "'" || q == `"` {
		end := strings.IndexByte(line[1:], q[0])
		if end < 0 {
			return Query{}, fmt.Errorf("%w: a query starting with %s must end with %s", ErrUnterminated, q, q)
		}
		body := line[1 : 1+end]
		k, err := parseDistance(line[2+end:])
		if err != nil {
			return Query{}, err
		}
		if q == "'" {
			return Query{Words: []string{body}, K: k}, nil
		}
		return Query{Words: strings.Fields(body), K: k}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Query{}, nil
	}
	rest := ""
	if len(fields) > 1 {
		rest = fields[1]
	}
	k, err := parseDistance(rest)
	if err != nil {
		return Query{}, err
	}
	return Query{Words: fields[:1], K: k}, nil
}

func parseDistance(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, nil
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil || k < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadDistance, fields[0])
	}
	return k, nil
}
