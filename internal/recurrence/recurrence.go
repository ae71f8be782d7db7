// Package recurrence estimates how often a task repeats per year from its
// free-text date description.
//
// This is a heuristic over natural-language descriptions, not a calendar
// parser. Patterns are tried in order and the first match wins.
package recurrence

import (
	"math"
	"regexp"
	"strings"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/model"
)

const (
	weekday    = `(?:mon(?:day)?|tue(?:s|sday)?|wed(?:nesday)?|thu(?:r|rs|rsday)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?)`
	separator  = `(?:\s*,\s*|\s*&\s*|\s+and\s+)`
	month      = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	dayOfMonth = `\d{1,2}(?:st|nd|rd|th)?`
)

type rule struct {
	name    string
	pattern *regexp.Regexp
	count   int
}

var rules = []rule{
	{"yearly", regexp.MustCompile(`^every\s+(?:` + dayOfMonth + `\s+` + month + `|` + month + `\s+` + dayOfMonth + `)\b`), 1},
	{"monthly", regexp.MustCompile(`^every\s+(?:month\b|\d{1,2}(?:st|nd|rd|th)\b)`), 12},
	{"workday", regexp.MustCompile(`^every\s+(?:weekday|workday)\b`), 260},
	{"three weekdays", regexp.MustCompile(`^every\s+` + weekday + separator + weekday + separator + weekday + `\b`), 156},
	{"two weekdays", regexp.MustCompile(`^every\s+` + weekday + separator + weekday + `\b`), 104},
	{"weekday", regexp.MustCompile(`^every\s+` + weekday + `\b`), 52},
	{"weekly", regexp.MustCompile(`^(?:every\s+week\b|weekly\b)`), 52},
}

var trailingYear = regexp.MustCompile(`\b\d{4}$`)

// Classify returns the estimated occurrences per year for text. ok is false
// when no rule applies. Text ending in a four-digit year with no rule match
// is a one-time event and classifies as zero.
func Classify(text string) (count int, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.count, true
		}
	}
	if trailingYear.MatchString(text) {
		return 0, true
	}
	return 0, false
}

// Bounds is an inclusive range of occurrences per year.
type Bounds struct {
	Min int
	Max int
}

// AnyFrequency accepts every classified task and passes unclassified ones.
var AnyFrequency = Bounds{Min: 0, Max: math.MaxInt}

// Filter classifies each task's date_string and keeps those within b.
// Unclassified tasks are kept only when b.Min is zero. Classified tasks carry
// the count as their recurrence annotation. Use AnyFrequency for no bounds;
// the zero Bounds keeps only one-time and unclassified tasks.
func Filter(tasks model.Tasks, b Bounds) model.Tasks {
	kept := tasks.Filter(func(t *model.Task) bool {
		n, ok := Classify(t.DateString())
		if !ok {
			return b.Min == 0
		}
		t.SetRecurrence(n)
		return n >= b.Min && n <= b.Max
	})
	glog.V(1).Infof("recurrence: kept %d of %d tasks in [%d, %d]", kept.Len(), tasks.Len(), b.Min, b.Max)
	return kept
}
