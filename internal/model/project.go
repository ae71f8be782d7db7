package model

import (
	"github.com/todosync/todosync/internal/resource"
)

// Project is a remote project. Fields it owns: name, item_order, indent,
// color.
type Project struct {
	*resource.Resource
}

// NewProject wraps a raw project record.
func NewProject(record map[string]any, d resource.Dispatcher) *Project {
	return &Project{Resource: resource.New(resource.KindProject, record, d)}
}

func (p *Project) Name() string { return p.String("name") }

// Order returns item_order, or 0 when absent.
func (p *Project) Order() int64 {
	n, _ := p.Int("item_order")
	return n
}

func (p *Project) SetOrder(order int64) { p.Set("item_order", order) }

// Indent returns the nesting depth, or 0 when absent.
func (p *Project) Indent() int64 {
	n, _ := p.Int("indent")
	return n
}

// NewProjects builds a project collection from raw records.
func NewProjects(records []map[string]any, d resource.Dispatcher, lookup ProjectLookup) Projects {
	items := make([]*Project, 0, len(records))
	for _, rec := range records {
		items = append(items, NewProject(rec, d))
	}
	return Projects{items: items, lookup: lookup}
}

// ProjectByName returns the first project in c named name. Duplicate names
// are not supported; the first one wins.
func ProjectByName(c Projects, name string) (*Project, bool) {
	for _, p := range c.items {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}
