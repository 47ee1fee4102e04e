package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	return req
}

func TestValuesDropsBlanks(t *testing.T) {
	req := formRequest(t, url.Values{"tag": {"  one ", "", "two", "   "}})
	got := Values(req, "tag")
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Values = %v", got)
	}
}

func TestItemsZipsParallelArrays(t *testing.T) {
	req := formRequest(t, url.Values{
		"club_title":       {"Chess", "Robotics"},
		"club_description": {"Weekly matches", "Build and code"},
		"club_icon":        {"trophy", "computer"},
	})

	items := Items(req, "club")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Chess" || items[0].Icon != "trophy" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Description != "Build and code" {
		t.Errorf("item 1 = %+v", items[1])
	}
}

func TestItemsDropsEmptyRows(t *testing.T) {
	req := formRequest(t, url.Values{
		"step_title":       {"Apply", "", "Interview"},
		"step_description": {"Fill the form", "", ""},
	})

	items := Items(req, "step")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].Title != "Interview" {
		t.Errorf("item 1 = %+v", items[1])
	}
}

func TestItemsKeepsValueOnlyRows(t *testing.T) {
	req := formRequest(t, url.Values{
		"stats_title": {"Students", "", ""},
		"stats_value": {"2000+", "40+", ""},
	})

	items := Items(req, "stats")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].Value != "40+" {
		t.Errorf("item 1 = %+v", items[1])
	}
}

func TestItemsShorterArraysPadWithEmpty(t *testing.T) {
	req := formRequest(t, url.Values{
		"doc_title": {"Birth certificate", "Report card"},
		"doc_icon":  {"shield"},
	})

	items := Items(req, "doc")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].Icon != "" {
		t.Errorf("item 1 icon = %q, want empty", items[1].Icon)
	}
}

func TestLines(t *testing.T) {
	got := Lines("first\r\n\nsecond\n   \nthird\r\n")
	if len(got) != 3 || got[0] != "first" || got[2] != "third" {
		t.Errorf("Lines = %v", got)
	}
}
