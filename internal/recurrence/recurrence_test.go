package recurrence

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/todosync/todosync/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text  string
		count int
		ok    bool
	}{
		{"every Mon", 52, true},
		{"every monday", 52, true},
		{"Every Tues at 9am", 52, true},
		{"every Mon, Wed", 104, true},
		{"every mon and thu", 104, true},
		{"every mon & fri", 104, true},
		{"every mon, wed, fri", 156, true},
		{"every tue, thurs and sat", 156, true},
		{"every month", 12, true},
		{"every 15th", 12, true},
		{"every 1st", 12, true},
		{"every 15 mar", 1, true},
		{"every March 3rd", 1, true},
		{"every weekday", 260, true},
		{"every workday", 260, true},
		{"every week", 52, true},
		{"weekly", 52, true},
		{"15 Mar 2024", 0, true},
		{"  15 Mar 2024  ", 0, true},
		{"tomorrow", 0, false},
		{"every 2 weeks", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			count, ok := Classify(tt.text)
			if count != tt.count || ok != tt.ok {
				t.Fatalf("Classify(%q) = %d, %v; want %d, %v", tt.text, count, ok, tt.count, tt.ok)
			}
		})
	}
}

func tasks(dates ...string) model.Tasks {
	recs := make([]map[string]any, len(dates))
	for i, d := range dates {
		recs[i] = map[string]any{"id": i + 1, "content": d, "date_string": d}
	}
	return model.NewTasks(recs, nil, nil)
}

func contents(c model.Tasks) []string {
	out := make([]string, 0, c.Len())
	for _, t := range c.Items() {
		out = append(out, t.Content())
	}
	return out
}

func TestFilter_UnclassifiedPassesWithoutLowerBound(t *testing.T) {
	in := tasks("every Mon", "someday maybe")

	got := Filter(in, AnyFrequency)
	assert.Equal(t, contents(got), []string{"every Mon", "someday maybe"})

	n, ok := got.At(0).Recurrence()
	assert.Equal(t, ok, true)
	assert.Equal(t, n, 52)
	_, ok = got.At(1).Recurrence()
	assert.Equal(t, ok, false)
	assert.Equal(t, got.At(1).Content(), "someday maybe")
	assert.Equal(t, got.At(1).Dirty(), false)

	got = Filter(in, Bounds{Min: 1, Max: AnyFrequency.Max})
	assert.Equal(t, contents(got), []string{"every Mon"})
}

func TestFilter_InclusiveBounds(t *testing.T) {
	in := tasks("every month", "every Mon", "every Mon, Wed", "every weekday", "1 Jan 2030")

	got := Filter(in, Bounds{Min: 12, Max: 104})
	assert.Equal(t, contents(got), []string{"every month", "every Mon", "every Mon, Wed"})

	got = Filter(in, Bounds{Min: 0, Max: 0})
	assert.Equal(t, contents(got), []string{"1 Jan 2030"})
}
