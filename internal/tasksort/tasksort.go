// Package tasksort orders tasks by an arbitrary field.
package tasksort

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/todosync/todosync/internal/model"
	"github.com/todosync/todosync/internal/todoist"
)

// dateFields hold timestamps and are compared as times.
var dateFields = map[string]bool{
	"due_date":     true,
	"due_date_utc": true,
}

// Sort returns tasks stably ordered by field ascending. Ties, including
// differently written but equal dates, are broken by content.
func Sort(tasks model.Tasks, field string) model.Tasks {
	field = strings.TrimSpace(field)
	compare := compareValues
	if dateFields[field] {
		compare = compareDates
	}
	return tasks.SortStable(func(a, b *model.Task) bool {
		av, _ := a.Get(field)
		bv, _ := b.Get(field)
		if c := compare(av, bv); c != 0 {
			return c < 0
		}
		return a.Content() < b.Content()
	})
}

func compareDates(a, b any) int {
	ta := parseDate(a)
	tb := parseDate(b)
	return ta.Compare(tb)
}

func parseDate(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	return todoist.ParseTime(s)
}

// Values of different kinds order as nil, booleans, numbers, strings, then
// anything else.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	}
	if _, ok := number(v); ok {
		return rankNumber
	}
	return rankOther
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case rankNumber:
		af, _ := number(a)
		bf, _ := number(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}
