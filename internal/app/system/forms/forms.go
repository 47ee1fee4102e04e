// Package forms parses the repeated-field conventions used by the admin
// editors. List sections post parallel arrays of same-named inputs
// (title, description...) that are zipped by position; multi-line text
// areas post one paragraph per line. Lists are rewritten wholesale on
// every save, so ordering is whatever the form posted.
package forms

import (
	"net/http"
	"strings"

	"github.com/brightland/schoolsite/internal/domain/models"
)

// Values returns the trimmed values posted under key, dropping blanks.
func Values(r *http.Request, key string) []string {
	out := []string{}
	for _, v := range r.Form[key] {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// valueAt returns the i'th posted value for key, or "" when the form
// posted fewer values than the longest array in the section.
func valueAt(r *http.Request, key string, i int) string {
	vals := r.Form[key]
	if i >= len(vals) {
		return ""
	}
	return strings.TrimSpace(vals[i])
}

// Items zips the parallel arrays prefix_title, prefix_description,
// prefix_icon, prefix_color, prefix_image and prefix_value into content
// items. Rows with every field empty are dropped, so trailing blank
// editor rows don't persist; a row with any single field filled (a
// stats row may carry only a value) is kept.
func Items(r *http.Request, prefix string) []models.ContentItem {
	titles := r.Form[prefix+"_title"]
	out := []models.ContentItem{}
	for i := range titles {
		item := models.ContentItem{
			Title:       valueAt(r, prefix+"_title", i),
			Description: valueAt(r, prefix+"_description", i),
			Icon:        valueAt(r, prefix+"_icon", i),
			Color:       valueAt(r, prefix+"_color", i),
			Image:       valueAt(r, prefix+"_image", i),
			Value:       valueAt(r, prefix+"_value", i),
		}
		if (item == models.ContentItem{}) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Lines splits a textarea value into trimmed non-empty lines. Used for
// paragraph lists and class lists.
func Lines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
