package options

import (
	"strings"

	"github.com/orderfoodonline/checkout/internal/models"
)

// The order backend stores the note in a bounded column. The option
// summary is kept under 200 characters, the summary plus user note
// under 250, and the whole string is hard-capped at 2000 as a
// last-resort bound.
const (
	labelsMaxLen   = 200
	noteTargetLen  = 250
	noteHardCapLen = 2000
	minUserNoteLen = 10
	ellipsis       = "..."
)

// ActiveLabels collects the labels of every active value, in group then
// value declaration order. Labels are trimmed; empty ones are skipped.
func ActiveLabels(groups []models.OptionGroup, sel Selection) []string {
	var labels []string
	for _, g := range groups {
		active := sel[g.ID]
		for _, v := range g.Values {
			if indexOf(active, v.ID) < 0 {
				continue
			}
			if label := strings.TrimSpace(v.Label); label != "" {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// CartLabels collects the selected value labels of every cart line, in
// line then group then value order.
func CartLabels(lines []models.CartLine) []string {
	var labels []string
	for _, line := range lines {
		for _, g := range line.Options {
			for _, v := range g.Values {
				if label := strings.TrimSpace(v.Label); label != "" {
					labels = append(labels, label)
				}
			}
		}
	}
	return labels
}

// ComposeNote builds the free-text order note from the active option
// labels and an optional user note.
//
// Labels are deduplicated case-sensitively and joined with commas; the
// joined summary is truncated to 200 characters. A non-empty user note
// is appended after " | " if at least 10 characters of the 250 budget
// remain, truncated to fit. With no labels at all, the user note alone
// becomes the note, capped at 250. Control characters are stripped and
// the result is hard-capped at 2000 characters.
func ComposeNote(labels []string, userNote string) string {
	joined := strings.Join(dedupe(labels), ",")
	if runeLen(joined) > labelsMaxLen {
		joined = clip(joined, labelsMaxLen-len(ellipsis)) + ellipsis
	}

	note := joined
	if userNote = strings.TrimSpace(userNote); userNote != "" {
		if note != "" {
			remaining := noteTargetLen - runeLen(note)
			if remaining > minUserNoteLen {
				if runeLen(userNote) > remaining {
					userNote = clip(userNote, remaining-len(ellipsis)) + ellipsis
				}
				note += " | " + userNote
			}
		} else {
			if runeLen(userNote) > noteTargetLen {
				userNote = clip(userNote, noteTargetLen-len(ellipsis)) + ellipsis
			}
			note = userNote
		}
	}

	return finalizeNote(note)
}

// finalizeNote strips control characters and applies the 2000-character
// hard cap. It guards every construction path, including ones that
// bypass the normal budgets.
func finalizeNote(note string) string {
	note = stripControl(note)
	if runeLen(note) > noteHardCapLen {
		note = clip(note, noteHardCapLen-len(ellipsis)) + ellipsis
	}
	return note
}

// dedupe removes repeated labels by exact case-sensitive match,
// preserving first-occurrence order.
func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// stripControl removes C0 controls, DEL and C1 controls, the same
// ranges the backend rejects.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)
}

func runeLen(s string) int {
	return len([]rune(s))
}

// clip truncates s to at most n characters without splitting a rune.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
