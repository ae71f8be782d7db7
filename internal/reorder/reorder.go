// Package reorder aligns live project order, indent and color with a
// template project list matched by name.
package reorder

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/model"
)

// UnknownMode places projects that have no template entry.
type UnknownMode string

const (
	UnknownTop    UnknownMode = "top"
	UnknownBottom UnknownMode = "bottom"
	UnknownIgnore UnknownMode = "ignore"
)

// ParseUnknownMode validates a mode name. Empty selects UnknownIgnore.
func ParseUnknownMode(raw string) (UnknownMode, error) {
	switch mode := UnknownMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return UnknownIgnore, nil
	case UnknownTop, UnknownBottom, UnknownIgnore:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want top, bottom or ignore)", raw)
	}
}

// Options tune Sync. Zero values select the defaults.
type Options struct {
	Unknown UnknownMode
	// PinnedName is the project that never moves (default "Inbox").
	PinnedName string
	// PinnedWithin pins PinnedName only while its order is below this value
	// (default 2).
	PinnedWithin int64
}

const (
	DefaultPinnedName   = "Inbox"
	DefaultPinnedWithin = 2
)

func (o Options) withDefaults() Options {
	if o.Unknown == "" {
		o.Unknown = UnknownIgnore
	}
	if o.PinnedName == "" {
		o.PinnedName = DefaultPinnedName
	}
	if o.PinnedWithin <= 0 {
		o.PinnedWithin = DefaultPinnedWithin
	}
	return o
}

// templated fields copied from a matching template entry.
var templated = []string{"indent", "color"}

// Sync reorders live against tmpl and saves every project. The returned
// collection holds the same projects in their new order. The first save
// error aborts; projects saved before it stay committed.
func Sync(ctx context.Context, live, tmpl model.Projects, opts Options) (model.Projects, error) {
	opts = opts.withDefaults()

	pinned := func(p *model.Project) bool {
		return p.Name() == opts.PinnedName && p.Order() < opts.PinnedWithin
	}
	key := func(p *model.Project) int64 {
		if t, ok := model.ProjectByName(tmpl, p.Name()); ok {
			return t.Order()
		}
		switch opts.Unknown {
		case UnknownTop:
			return math.MinInt64
		case UnknownBottom:
			return math.MaxInt64
		default:
			return p.Order()
		}
	}

	sorted := live.SortStable(func(a, b *model.Project) bool {
		pa, pb := pinned(a), pinned(b)
		if pa != pb {
			return pa
		}
		if pa {
			return false
		}
		return key(a) < key(b)
	})

	var next int64 = 1
	for _, p := range sorted.Items() {
		if pinned(p) {
			continue
		}
		p.SetOrder(next)
		next++
		if t, ok := model.ProjectByName(tmpl, p.Name()); ok {
			for _, field := range templated {
				if v, err := t.Get(field); err == nil {
					p.Set(field, v)
				}
			}
		}
	}

	saved := 0
	err := sorted.Each(func(_ int, p *model.Project) error {
		if !p.Dirty() {
			return nil
		}
		if err := p.Save(ctx); err != nil {
			return fmt.Errorf("save project %q: %w", p.Name(), err)
		}
		saved++
		return nil
	})
	glog.Infof("reorder: %d projects, %d saved", sorted.Len(), saved)
	return sorted, err
}
