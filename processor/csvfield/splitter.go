package csvfield

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnterminatedQuote is returned when a quoted field is not closed before the end of the line.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrBareQuote is returned when data follows the closing quote of a quoted field.
	ErrBareQuote = errors.New("unexpected data after closing quote")
)

// ParseError carries the 1-based column position where tokenizing failed.
type ParseError struct {
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at column %d: %s", e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Splitter tokenizes one line of delimited text. It is immutable after
// construction and safe to share across concurrently processed events.
type Splitter struct {
	delimiter byte
	quote     byte
}

// NewSplitter expects delimiter and quote to be distinct single characters;
// the config layer validates that before the splitter is built.
func NewSplitter(delimiter, quote byte) Splitter {
	return Splitter{delimiter: delimiter, quote: quote}
}

// SplitLine tokenizes a single line into raw string fields.
//
// Quoting rules: a field starting with the quote character runs to the next
// unescaped quote, delimiters inside it are literal, and a doubled quote is
// one literal quote. A quote in the middle of an unquoted field is literal.
//
// An empty line yields zero fields, distinguishing "no data" from one empty
// column. No type coercion happens here; every field comes back as-is.
func (s Splitter) SplitLine(line string) ([]string, error) {
	if line == "" {
		return nil, nil
	}

	fields := make([]string, 0, 8)
	i := 0
	for {
		if i < len(line) && line[i] == s.quote {
			field, next, err := s.readQuotedField(line, i+1)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
			i = next
		} else {
			start := i
			for i < len(line) && line[i] != s.delimiter {
				i++
			}
			fields = append(fields, line[start:i])
		}

		if i >= len(line) {
			return fields, nil
		}
		i++ // consume delimiter; a trailing delimiter yields one more empty field
	}
}

// readQuotedField scans from just past the opening quote and returns the
// unescaped field along with the position of the delimiter or line end.
func (s Splitter) readQuotedField(line string, start int) (string, int, error) {
	var field strings.Builder
	i := start
	for i < len(line) {
		c := line[i]
		if c != s.quote {
			field.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(line) && line[i+1] == s.quote {
			field.WriteByte(s.quote)
			i += 2
			continue
		}
		// closing quote: only a delimiter or the line end may follow
		i++
		if i < len(line) && line[i] != s.delimiter {
			return "", 0, &ParseError{Column: i + 1, Err: ErrBareQuote}
		}
		return field.String(), i, nil
	}
	return "", 0, &ParseError{Column: i, Err: ErrUnterminatedQuote}
}
