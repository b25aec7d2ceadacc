package csvfield

import (
	"fmt"

	"github.com/tributary-io/tributary/constants"
	"github.com/tributary-io/tributary/utils"
)

type Config struct {
	// Source is the event field holding the delimited line to parse
	Source               string   `json:"source" validate:"required"`
	Delimiter            string   `json:"delimiter" validate:"len=1"`
	QuoteCharacter       string   `json:"quote_character" validate:"len=1"`
	ColumnNames          []string `json:"column_names,omitempty"`
	ColumnNamesSourceKey string   `json:"column_names_source_key,omitempty"`
	DeleteHeader         bool     `json:"delete_header,omitempty"`
}

func (c *Config) Validate() error {
	if c.Source == "" {
		c.Source = constants.DefaultSourceKey
	}
	if c.Delimiter == "" {
		c.Delimiter = constants.DefaultDelimiter
	}
	if c.QuoteCharacter == "" {
		c.QuoteCharacter = constants.DefaultQuoteCharacter
	}

	// the splitter works on single bytes, so reject multi-byte runes too
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if len(c.QuoteCharacter) != 1 {
		return fmt.Errorf("quote_character must be a single character, got %q", c.QuoteCharacter)
	}
	if c.Delimiter == c.QuoteCharacter {
		return fmt.Errorf("delimiter and quote_character must be distinct, both are %q", c.Delimiter)
	}

	return utils.Validate(c)
}
