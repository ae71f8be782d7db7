// Package inherit fuses a nested task's parent content into its own.
package inherit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/model"
)

// Apply chooses which side of the child the parent content goes on.
type Apply string

const (
	Prepend Apply = "prepend"
	Append  Apply = "append"
)

// Strip trims the parent content around a colon before fusing. StripPre
// drops everything through the last colon; StripPost drops everything from
// the first colon.
type Strip string

const (
	StripNone Strip = "none"
	StripPre  Strip = "pre"
	StripPost Strip = "post"
)

// minIndent is the indent of top-level tasks.
const minIndent = 1

// DefaultDelimiter joins parent and child content.
const DefaultDelimiter = ": "

// Options configure Run.
type Options struct {
	Apply     Apply
	Strip     Strip
	Delimiter string
	// MaxContentLength skips children whose content is already longer, in
	// runes. Zero means no limit.
	MaxContentLength int
}

// ParseApply validates an apply mode. Empty selects Prepend.
func ParseApply(raw string) (Apply, error) {
	switch a := Apply(strings.ToLower(strings.TrimSpace(raw))); a {
	case "":
		return Prepend, nil
	case Prepend, Append:
		return a, nil
	default:
		return "", fmt.Errorf("unknown apply mode %q (want prepend or append)", raw)
	}
}

// ParseStrip validates a strip mode. Empty selects StripNone.
func ParseStrip(raw string) (Strip, error) {
	switch s := Strip(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StripNone, nil
	case StripNone, StripPre, StripPost:
		return s, nil
	default:
		return "", fmt.Errorf("unknown strip mode %q (want none, pre or post)", raw)
	}
}

// TaskSource returns the complete task list of a project ordered by
// item_order, independent of any filtering applied to the input.
type TaskSource interface {
	ProjectTasks(projectID string) []*model.Task
}

// Run rewrites the content of every nested task in tasks whose immediate
// parent can be found in src. It returns the modified tasks; saving them is
// left to the caller.
func Run(tasks model.Tasks, src TaskSource, opts Options) model.Tasks {
	if opts.Apply == "" {
		opts.Apply = Prepend
	}
	if opts.Strip == "" {
		opts.Strip = StripNone
	}

	// Parent contents are read before any task is rewritten so a chain of
	// nested tasks only ever receives its immediate parent's original text.
	projects := map[string][]entry{}
	var changed []*model.Task
	for _, child := range tasks.Items() {
		if child.Indent() <= minIndent {
			continue
		}
		if opts.MaxContentLength > 0 && utf8.RuneCountInString(child.Content()) > opts.MaxContentLength {
			continue
		}
		pid := child.ProjectID()
		list, ok := projects[pid]
		if !ok {
			list = snapshot(src.ProjectTasks(pid))
			projects[pid] = list
		}
		parent, ok := findParent(list, child)
		if !ok {
			continue
		}
		prefix := strip(parent, opts.Strip)
		if prefix == "" {
			continue
		}
		if opts.Apply == Append {
			child.SetContent(child.Content() + opts.Delimiter + prefix)
		} else {
			child.SetContent(prefix + opts.Delimiter + child.Content())
		}
		changed = append(changed, child)
	}
	glog.V(1).Infof("inherit: %d of %d tasks rewritten", len(changed), tasks.Len())
	return tasks.With(changed)
}

type entry struct {
	id      string
	order   int64
	indent  int64
	content string
}

func snapshot(list []*model.Task) []entry {
	out := make([]entry, len(list))
	for i, t := range list {
		out[i] = entry{id: t.ID(), order: t.Order(), indent: t.Indent(), content: t.Content()}
	}
	return out
}

// findParent walks backward from child through list, which is ordered by
// item_order, for the nearest task exactly one level shallower.
func findParent(list []entry, child *model.Task) (string, bool) {
	want := child.Indent() - 1
	pos := -1
	for i, e := range list {
		if e.id == child.ID() {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", false
	}
	for i := pos - 1; i >= 0; i-- {
		e := list[i]
		if e.order <= 0 {
			break
		}
		switch {
		case e.indent == want:
			return e.content, true
		case e.indent < want:
			return "", false
		}
	}
	return "", false
}

func strip(content string, mode Strip) string {
	switch mode {
	case StripPre:
		if i := strings.LastIndex(content, ":"); i >= 0 {
			content = content[i+1:]
		}
	case StripPost:
		if i := strings.Index(content, ":"); i >= 0 {
			content = content[:i]
		}
	}
	return strings.TrimSpace(content)
}
