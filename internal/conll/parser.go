package conll

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006-01", "2006"}

func ParseFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse reads a corpus. A "document_id" comment starts a new document;
// tokens before the first one form an anonymous document.
func Parse(r io.Reader) (*Corpus, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	c := &Corpus{}
	var doc *Document
	pendingMeta := map[string]string{}
	lineNo := 0

	startDoc := func(id string) {
		doc = &Document{ID: id, Meta: map[string]string{}}
		c.Docs = append(c.Docs, doc)
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			key, value, ok := parseComment(line)
			if !ok {
				continue
			}
			switch {
			case key == "document_id":
				startDoc(value)
				for k, v := range pendingMeta {
					applyMeta(doc, k, v)
				}
				pendingMeta = map[string]string{}
				applyMeta(doc, key, value)
			case doc == nil || (len(doc.Tokens) > 0 && isDocLevel(key)):
				// header of the next document
				pendingMeta[key] = value
			default:
				applyMeta(doc, key, value)
			}
			continue
		}

		fields := strings.Split(line, "\t")

		if c.Columns == nil {
			if fields[0] != TokenColumn {
				return nil, fmt.Errorf("line %d: expected header starting with %s, got %q", lineNo, TokenColumn, fields[0])
			}
			c.Columns = fields
			c.index = make(map[string]int, len(fields))
			for i, name := range fields {
				c.index[strings.TrimSpace(name)] = i
			}
			continue
		}

		if len(fields) != len(c.Columns) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, len(c.Columns), len(fields))
		}
		if doc == nil {
			startDoc("")
			for k, v := range pendingMeta {
				applyMeta(doc, k, v)
			}
			pendingMeta = map[string]string{}
		}
		doc.Tokens = append(doc.Tokens, Token{Line: lineNo, Fields: fields})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}
	if c.Columns == nil {
		return nil, fmt.Errorf("no header line found")
	}

	return c, nil
}

// parseComment reads "# key = value", dropping a "hipe2022:" style namespace.
func parseComment(line string) (string, string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	key, value, ok := strings.Cut(body, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if i := strings.LastIndex(key, ":"); i >= 0 {
		key = key[i+1:]
	}
	return key, strings.TrimSpace(value), true
}

func isDocLevel(key string) bool {
	switch key {
	case "date", "language", "newspaper":
		return true
	}
	return false
}

func applyMeta(doc *Document, key, value string) {
	doc.Meta[key] = value
	if key != "date" {
		return
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			doc.Date = t
			doc.HasDate = true
			return
		}
	}
}
