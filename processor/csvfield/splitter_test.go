package csvfield

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name      string
		delimiter byte
		quote     byte
		line      string
		expected  []string
	}{
		{
			name:     "plain fields",
			line:     "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "empty fields preserved",
			line:     "a,,b",
			expected: []string{"a", "", "b"},
		},
		{
			name:     "empty line yields zero fields",
			line:     "",
			expected: nil,
		},
		{
			name:     "single delimiter yields two empty fields",
			line:     ",",
			expected: []string{"", ""},
		},
		{
			name:     "trailing delimiter yields trailing empty field",
			line:     "a,",
			expected: []string{"a", ""},
		},
		{
			name:     "leading delimiter yields leading empty field",
			line:     ",a",
			expected: []string{"", "a"},
		},
		{
			name:     "quoted field keeps delimiter literal",
			line:     `"a,b",c`,
			expected: []string{"a,b", "c"},
		},
		{
			name:     "doubled quote is one literal quote",
			line:     `"a""b",c`,
			expected: []string{`a"b`, "c"},
		},
		{
			name:     "quoted empty field",
			line:     `"",a`,
			expected: []string{"", "a"},
		},
		{
			name:     "quote inside unquoted field is literal",
			line:     `a"b,c`,
			expected: []string{`a"b`, "c"},
		},
		{
			name:     "whole line quoted",
			line:     `"a,b,c"`,
			expected: []string{"a,b,c"},
		},
		{
			name:      "custom delimiter and quote",
			delimiter: ';',
			quote:     '\'',
			line:      "'x;y';z,1",
			expected:  []string{"x;y", "z,1"},
		},
		{
			name:      "tab delimiter",
			delimiter: '\t',
			line:      "a\tb\tc",
			expected:  []string{"a", "b", "c"},
		},
		{
			name:     "multibyte content passes through",
			line:     "héllo,wörld",
			expected: []string{"héllo", "wörld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delimiter := tt.delimiter
			if delimiter == 0 {
				delimiter = ','
			}
			quote := tt.quote
			if quote == 0 {
				quote = '"'
			}

			row, err := NewSplitter(delimiter, quote).SplitLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, row)
		})
	}
}

func TestSplitLineMalformed(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		expectedErr error
	}{
		{
			name:        "unterminated quote",
			line:        `"a,b`,
			expectedErr: ErrUnterminatedQuote,
		},
		{
			name:        "unterminated quote with escaped quote",
			line:        `"a""`,
			expectedErr: ErrUnterminatedQuote,
		},
		{
			name:        "data after closing quote",
			line:        `"a"b,c`,
			expectedErr: ErrBareQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := NewSplitter(',', '"').SplitLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr))
			assert.Nil(t, row)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Positive(t, parseErr.Column)
		})
	}
}
