// Package conll reads the tab-separated HIPE annotation format: a header
// naming the columns, "#" metadata comments and one token per line.
package conll

import (
	"strconv"
	"strings"
	"time"
)

const (
	TokenColumn = "TOKEN"
	MiscColumn  = "MISC"

	flagEndOfLine = "EndOfLine"
	ledPrefix     = "LED"
)

// Corpus is one parsed annotation file.
type Corpus struct {
	Columns []string
	Docs    []*Document

	index map[string]int
}

// Column returns the position of a named column in Token.Fields.
func (c *Corpus) Column(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

type Document struct {
	ID      string
	Date    time.Time
	HasDate bool
	Meta    map[string]string
	Tokens  []Token
}

type Token struct {
	Line   int
	Fields []string
}

func (t Token) Text() string {
	return t.Fields[0]
}

// Label returns the value of a column, empty when the column index is out of range.
func (t Token) Label(col int) string {
	if col < 0 || col >= len(t.Fields) {
		return ""
	}
	return t.Fields[col]
}

// Misc holds the pipe-separated flags of the MISC column.
type Misc []string

func ParseMisc(s string) Misc {
	if s == "" || s == "_" {
		return nil
	}
	return strings.Split(s, "|")
}

func (m Misc) EndOfLine() bool {
	for _, f := range m {
		if f == flagEndOfLine {
			return true
		}
	}
	return false
}

// LED returns the normalized Levenshtein distance of the token's OCR.
func (m Misc) LED() (float64, bool) {
	for _, f := range m {
		if !strings.HasPrefix(f, ledPrefix) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimPrefix(f, ledPrefix), 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

// IsOutside reports whether a label marks a token outside any annotation.
func IsOutside(label string) bool {
	switch label {
	case "", "O", "_", "-":
		return true
	}
	return false
}
