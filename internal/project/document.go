package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/madori/internal/model"
)

// ErrMalformedDocument is wrapped by every decode failure caused by the
// content of a plan file, as opposed to I/O errors.
var ErrMalformedDocument = errors.New("malformed floor plan document")

// DocumentExt is the extension of saved plans.
const DocumentExt = ".json"

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc model.Document) error {
	doc.Normalize()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// Decode reads a plan. Missing or null categories become empty, so files
// written before windows or figures existed still load. The input must be
// a single JSON object and every element must carry an id.
func Decode(r io.Reader) (model.Document, error) {
	dec := json.NewDecoder(r)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return model.Document{}, fmt.Errorf("%w: top level is not an object", ErrMalformedDocument)
	}
	if _, err := dec.Token(); err != io.EOF {
		return model.Document{}, fmt.Errorf("%w: unexpected data after the document", ErrMalformedDocument)
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := checkIDs(doc); err != nil {
		return model.Document{}, err
	}
	doc.Normalize()
	return doc, nil
}

// checkIDs rejects elements without an id, including null array entries.
func checkIDs(doc model.Document) error {
	missing := func(kind string, i int) error {
		return fmt.Errorf("%w: %s[%d] has no id", ErrMalformedDocument, kind, i)
	}
	for i, e := range doc.Rooms {
		if e.ID == "" {
			return missing("rooms", i)
		}
	}
	for i, e := range doc.Walls {
		if e.ID == "" {
			return missing("walls", i)
		}
	}
	for i, e := range doc.Doors {
		if e.ID == "" {
			return missing("doors", i)
		}
	}
	for i, e := range doc.Windows {
		if e.ID == "" {
			return missing("windows", i)
		}
	}
	for i, e := range doc.Figures {
		if e.ID == "" {
			return missing("manikins", i)
		}
	}
	return nil
}

// Save writes doc to path, creating parent directories as needed.
func Save(path string, doc model.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Load reads the plan at path.
func Load(path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// DefaultFileName returns the suggested file name for a plan saved or
// exported on the given day, e.g. "間取り_2024-05-01.json".
func DefaultFileName(now time.Time, ext string) string {
	return "間取り_" + now.Format("2006-01-02") + ext
}
