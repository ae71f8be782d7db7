// Package template loads the desired project layout used by reorder.
//
// A template file is YAML (JSON also parses, being a subset):
//
//	projects:
//	  - name: Inbox
//	  - name: Work
//	    indent: 1
//	    color: 7
//	  - name: Reports
//	    indent: 2
//
// A project's order is its position in the list unless order is given.
// indent and color are applied only when present.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/todosync/todosync/internal/model"
)

// Entry is one template project.
type Entry struct {
	Name   string `yaml:"name"`
	Order  *int64 `yaml:"order"`
	Indent *int64 `yaml:"indent"`
	Color  *int64 `yaml:"color"`
}

type file struct {
	Projects []Entry `yaml:"projects"`
}

// Load reads and parses the template at path.
func Load(path string) (model.Projects, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Projects{}, fmt.Errorf("read template: %w", err)
	}
	return Parse(data)
}

// Parse decodes a template document into detached projects. Duplicate or
// empty names are rejected since matching is by name.
func Parse(data []byte) (model.Projects, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return model.Projects{}, fmt.Errorf("parse template: %w", err)
	}

	seen := make(map[string]bool, len(doc.Projects))
	records := make([]map[string]any, 0, len(doc.Projects))
	for i, e := range doc.Projects {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return model.Projects{}, fmt.Errorf("parse template: project %d has no name", i+1)
		}
		if seen[name] {
			return model.Projects{}, fmt.Errorf("parse template: duplicate project %q", name)
		}
		seen[name] = true

		rec := map[string]any{"name": name, "item_order": int64(i)}
		if e.Order != nil {
			rec["item_order"] = *e.Order
		}
		if e.Indent != nil {
			rec["indent"] = *e.Indent
		}
		if e.Color != nil {
			rec["color"] = *e.Color
		}
		records = append(records, rec)
	}
	return model.NewProjects(records, nil, nil), nil
}
