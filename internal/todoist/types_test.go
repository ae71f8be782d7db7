package todoist

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseResult_Shapes(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantErrs  int
		wantFirst int
		ambiguous bool
	}{
		{"ok", `"ok"`, 0, 0, false},
		{"ok any case", `"OK"`, 0, 0, false},
		{"error object", `{"error_code": 20, "error": "Project not found"}`, 1, 20, false},
		{"array mixed", `["ok", {"error_code": 21, "error": "a"}, {"error_code": 22, "error": "b"}]`, 2, 21, false},
		{"keyed sub results", `{"b": {"error_code": 31, "error": "x"}, "a": "ok"}`, 1, 31, false},
		{"unknown string", `"queued"`, 0, 0, true},
		{"number", `5`, 0, 0, true},
		{"empty array", `[]`, 0, 0, true},
		{"garbage", `{`, 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ParseResult("u", json.RawMessage(tc.raw))
			if tc.ambiguous {
				var aerr *AmbiguousResponseError
				if !errors.As(err, &aerr) {
					t.Fatalf("ParseResult(%s) error = %v, want AmbiguousResponseError", tc.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResult(%s) returned error: %v", tc.raw, err)
			}
			if len(res.Errors) != tc.wantErrs {
				t.Fatalf("errors = %d, want %d", len(res.Errors), tc.wantErrs)
			}
			if tc.wantErrs > 0 {
				var rerr *RemoteError
				if !errors.As(res.Err(), &rerr) || rerr.Code != tc.wantFirst || rerr.UUID != "u" {
					t.Fatalf("first error = %v, want code %d for uuid u", res.Err(), tc.wantFirst)
				}
			}
		})
	}
}

func TestStatusMap_ResultMissingUUID(t *testing.T) {
	s := StatusMap{"a": json.RawMessage(`"ok"`)}
	_, found, err := s.Result("b")
	if found || err != nil {
		t.Fatalf("Result(b) = found %v err %v, want not found", found, err)
	}
}

func TestParseTime_Layouts(t *testing.T) {
	if got := ParseTime("Fri 26 Sep 2014 08:25:05 +0000"); got.Year() != 2014 || got.Month() != time.September {
		t.Fatalf("ParseTime todoist layout = %v", got)
	}
	if got := ParseTime("2024-01-15"); got.Day() != 15 {
		t.Fatalf("ParseTime date = %v", got)
	}
	if got := ParseTime("2024-01-15T10:00:00Z"); got.Hour() != 10 {
		t.Fatalf("ParseTime rfc3339 = %v", got)
	}
	if !ParseTime("tomorrow").IsZero() || !ParseTime(" ").IsZero() {
		t.Fatalf("ParseTime should return zero for unparseable values")
	}
}

func TestErrorMessages(t *testing.T) {
	terr := &TransportError{Kind: KindRateLimited, Op: "sync", Status: 429}
	if terr.Error() != "todoist: sync: rate limited (status 429)" {
		t.Fatalf("TransportError = %q", terr.Error())
	}
	verr := &ValidationError{Field: "project", Value: "Work", Err: ErrNotFound}
	if !errors.Is(verr, ErrNotFound) {
		t.Fatalf("ValidationError should unwrap to ErrNotFound")
	}
	if verr.Error() != `todoist: invalid project "Work": not found` {
		t.Fatalf("ValidationError = %q", verr.Error())
	}
}
