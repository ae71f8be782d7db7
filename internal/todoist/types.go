package todoist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// statusOK is the literal marker the sync endpoint returns for a command
// that was applied.
const statusOK = "ok"

// todoistTimestampLayout is the layout used by due_date and date_added.
const todoistTimestampLayout = "Mon 02 Jan 2006 15:04:05 -0700"

// Record is a raw project or item as returned by the sync endpoint. Numbers
// are kept as json.Number so ids and orders survive a round trip exactly.
type Record = map[string]any

// Snapshot mirrors the subset of the /sync payload the engine consumes.
type Snapshot struct {
	SeqNo    json.Number `json:"seq_no"`
	Projects []Record    `json:"Projects"`
	Items    []Record    `json:"Items"`
}

// Command is a single mutation submitted through /sync.
type Command struct {
	Type string         `json:"type"`
	UUID string         `json:"uuid"`
	Args map[string]any `json:"args"`
}

// StatusMap correlates submitted command uuids with their raw status.
type StatusMap map[string]json.RawMessage

type syncStatusResponse struct {
	SyncStatus StatusMap `json:"SyncStatus"`
}

// CommandResult is the decoded status of one command. A command with no
// errors was applied.
type CommandResult struct {
	UUID   string
	Errors []*RemoteError
}

// OK reports whether the command was applied.
func (r CommandResult) OK() bool {
	return len(r.Errors) == 0
}

// Err returns the first error reported for the command, if any.
func (r CommandResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Result decodes the status recorded for uuid. The boolean is false when the
// response does not mention uuid at all.
func (s StatusMap) Result(uuid string) (CommandResult, bool, error) {
	raw, ok := s[uuid]
	if !ok {
		return CommandResult{}, false, nil
	}
	res, err := ParseResult(uuid, raw)
	return res, true, err
}

// ParseResult decodes a single status value. Accepted shapes are the "ok"
// marker, an error object, an array of either, or an object keyed by sub-id
// whose values are either.
func ParseResult(uuid string, raw json.RawMessage) (CommandResult, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return CommandResult{}, &AmbiguousResponseError{UUID: uuid, Detail: err.Error()}
	}
	res := CommandResult{UUID: uuid}
	if err := collectErrors(uuid, value, &res.Errors); err != nil {
		return CommandResult{}, err
	}
	return res, nil
}

func collectErrors(uuid string, value any, out *[]*RemoteError) error {
	switch v := value.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(v), statusOK) {
			return nil
		}
		return &AmbiguousResponseError{UUID: uuid, Detail: strconv.Quote(v)}
	case []any:
		if len(v) == 0 {
			return &AmbiguousResponseError{UUID: uuid, Detail: "empty result list"}
		}
		for _, elem := range v {
			if err := collectErrors(uuid, elem, out); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if _, ok := v["error"]; ok {
			*out = append(*out, remoteErrorFrom(uuid, v))
			return nil
		}
		if len(v) == 0 {
			return &AmbiguousResponseError{UUID: uuid, Detail: "empty result object"}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := collectErrors(uuid, v[k], out); err != nil {
				return err
			}
		}
		return nil
	default:
		return &AmbiguousResponseError{UUID: uuid, Detail: fmt.Sprintf("%v", v)}
	}
}

func remoteErrorFrom(uuid string, obj map[string]any) *RemoteError {
	e := &RemoteError{UUID: uuid, Message: fmt.Sprint(obj["error"])}
	switch code := obj["error_code"].(type) {
	case json.Number:
		if n, err := code.Int64(); err == nil {
			e.Code = int(n)
		}
	case float64:
		e.Code = int(code)
	}
	return e
}

// ParseTime parses the timestamp formats the service emits. Invalid or
// missing values return the zero time.
func ParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		todoistTimestampLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
