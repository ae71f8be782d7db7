package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParse_YAML(t *testing.T) {
	projects, err := Parse([]byte(`
projects:
  - name: Inbox
  - name: Work
    indent: 1
    color: 7
  - name: Reports
    order: 10
    indent: 2
`))
	assert.Equal(t, err, nil)
	assert.Equal(t, projects.Len(), 3)

	work := projects.At(1)
	assert.Equal(t, work.Name(), "Work")
	assert.Equal(t, work.Order(), int64(1))
	assert.Equal(t, work.Indent(), int64(1))
	assert.Equal(t, work.String("color"), "7")

	inbox := projects.At(0)
	assert.Equal(t, inbox.Has("indent"), false)
	assert.Equal(t, inbox.Has("color"), false)

	assert.Equal(t, projects.At(2).Order(), int64(10))
}

func TestParse_JSON(t *testing.T) {
	projects, err := Parse([]byte(`{"projects": [{"name": "B", "indent": 1}, {"name": "A", "indent": 2}]}`))
	assert.Equal(t, err, nil)
	assert.Equal(t, projects.Len(), 2)
	assert.Equal(t, projects.At(1).Name(), "A")
	assert.Equal(t, projects.At(1).Order(), int64(1))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing name", "projects:\n  - indent: 1\n", "has no name"},
		{"duplicate", "projects:\n  - name: A\n  - name: A\n", "duplicate project"},
		{"unknown field", "projects:\n  - name: A\n    colour: 3\n", "parse template"},
		{"bad type", "projects:\n  - name: A\n    indent: deep\n", "parse template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	projects, err := Parse(nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, projects.Len(), 0)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.yaml")
	if err := os.WriteFile(path, []byte("projects:\n  - name: Inbox\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	projects, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if projects.Len() != 1 || projects.At(0).Name() != "Inbox" {
		t.Fatalf("Load = %d projects", projects.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load of a missing file returned nil error")
	}
}
