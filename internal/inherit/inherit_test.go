package inherit

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/todosync/todosync/internal/model"
)

// projectSource serves the full task list regardless of what Run receives.
type projectSource struct {
	all model.Tasks
}

func (s projectSource) ProjectTasks(projectID string) []*model.Task {
	sorted := s.all.SortStable(func(a, b *model.Task) bool { return a.Order() < b.Order() })
	var out []*model.Task
	for _, t := range sorted.Items() {
		if t.ProjectID() == projectID {
			out = append(out, t)
		}
	}
	return out
}

type row struct {
	project string
	order   int
	indent  int
	content string
}

func build(rows ...row) model.Tasks {
	recs := make([]map[string]any, len(rows))
	for i, r := range rows {
		recs[i] = map[string]any{
			"id":         i + 1,
			"project_id": r.project,
			"item_order": r.order,
			"indent":     r.indent,
			"content":    r.content,
		}
	}
	return model.NewTasks(recs, nil, nil)
}

func TestRun_PrependsParent(t *testing.T) {
	all := build(
		row{"p", 1, 1, "Proj"},
		row{"p", 2, 2, "Sub"},
	)
	got := Run(all, projectSource{all}, Options{Apply: Prepend, Delimiter: ": "})

	assert.Equal(t, got.Len(), 1)
	assert.Equal(t, all.At(1).Content(), "Proj: Sub")
	assert.Equal(t, all.At(0).Content(), "Proj")
	assert.Equal(t, all.At(1).Dirty(), true)
}

func TestRun_NoParentBeforeOrderZero(t *testing.T) {
	all := build(
		row{"p", 0, 1, "Root"},
		row{"p", 1, 2, "Orphan"},
	)
	got := Run(all, projectSource{all}, Options{Delimiter: ": "})

	assert.Equal(t, got.Len(), 0)
	assert.Equal(t, all.At(1).Content(), "Orphan")
}

func TestRun_ShallowerItemBreaksChain(t *testing.T) {
	all := build(
		row{"p", 1, 2, "Deep parent"},
		row{"p", 2, 1, "Top"},
		row{"p", 3, 3, "Child"},
	)
	Run(all, projectSource{all}, Options{Delimiter: ": "})
	assert.Equal(t, all.At(2).Content(), "Child")
}

func TestRun_SkipsDeeperSiblings(t *testing.T) {
	all := build(
		row{"p", 1, 1, "Parent"},
		row{"p", 2, 2, "First"},
		row{"p", 3, 3, "Grandchild"},
		row{"p", 4, 2, "Second"},
	)
	Run(all, projectSource{all}, Options{Delimiter: " / "})

	assert.Equal(t, all.At(1).Content(), "Parent / First")
	// Grandchild receives First's original content.
	assert.Equal(t, all.At(2).Content(), "First / Grandchild")
	assert.Equal(t, all.At(3).Content(), "Parent / Second")
}

func TestRun_UsesFullProjectList(t *testing.T) {
	all := build(
		row{"p", 1, 1, "Parent"},
		row{"q", 1, 1, "Other"},
		row{"p", 2, 2, "Child"},
	)
	filtered := all.Filter(func(t *model.Task) bool { return t.Content() == "Child" })
	got := Run(filtered, projectSource{all}, Options{Apply: Append, Delimiter: " - "})

	assert.Equal(t, got.Len(), 1)
	assert.Equal(t, got.At(0).Content(), "Child - Parent")
}

func TestRun_StripModes(t *testing.T) {
	tests := []struct {
		strip Strip
		want  string
	}{
		{StripNone, "Area: Proj: Goal: Sub"},
		{StripPre, "Goal: Sub"},
		{StripPost, "Area: Sub"},
	}
	for _, tt := range tests {
		t.Run(string(tt.strip), func(t *testing.T) {
			all := build(
				row{"p", 1, 1, "Area: Proj: Goal"},
				row{"p", 2, 2, "Sub"},
			)
			Run(all, projectSource{all}, Options{Strip: tt.strip, Delimiter: ": "})
			assert.Equal(t, all.At(1).Content(), tt.want)
		})
	}
}

func TestRun_EmptyParentAfterStrip(t *testing.T) {
	all := build(
		row{"p", 1, 1, "Tag:"},
		row{"p", 2, 2, "Sub"},
	)
	got := Run(all, projectSource{all}, Options{Strip: StripPre, Delimiter: ": "})
	assert.Equal(t, got.Len(), 0)
	assert.Equal(t, all.At(1).Content(), "Sub")
}

func TestRun_MaxContentLength(t *testing.T) {
	all := build(
		row{"p", 1, 1, "Parent"},
		row{"p", 2, 2, "Short"},
		row{"p", 3, 2, "Much longer child"},
	)
	Run(all, projectSource{all}, Options{Delimiter: ": ", MaxContentLength: 5})

	assert.Equal(t, all.At(1).Content(), "Parent: Short")
	assert.Equal(t, all.At(2).Content(), "Much longer child")
}

func TestParseModes(t *testing.T) {
	a, err := ParseApply("APPEND")
	assert.Equal(t, err, nil)
	assert.Equal(t, a, Append)
	_, err = ParseApply("sideways")
	assert.NotEqual(t, err, nil)

	s, err := ParseStrip("")
	assert.Equal(t, err, nil)
	assert.Equal(t, s, StripNone)
	_, err = ParseStrip("middle")
	assert.NotEqual(t, err, nil)
}
