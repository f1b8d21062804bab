// Package reply turns raw inference results into the single string sent to clients.
package reply

import (
	"strings"

	"genrelay/pkg/types"
)

// Fallback is returned when a result carries no usable text.
const Fallback = "No answer available"

// Extract joins the text parts of the first candidate with single spaces and
// trims the result. Any missing level, or an empty string after trimming,
// yields Fallback.
func Extract(res *types.Result) string {
	if res == nil || len(res.Candidates) == 0 {
		return Fallback
	}
	c := res.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
		return Fallback
	}
	texts := make([]string, len(c.Content.Parts))
	for i, p := range c.Content.Parts {
		if p.Text != nil {
			texts[i] = *p.Text
		}
	}
	out := strings.TrimSpace(strings.Join(texts, " "))
	if out == "" {
		return Fallback
	}
	return out
}
