// Package ui renders flag listings for the terminal.
package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wilbur182/flagreg/internal/styles"
)

// Row is one flag in a listing.
type Row struct {
	Key         string
	Default     bool
	Current     bool
	Description string
}

// Group is a titled block of rows.
type Group struct {
	Title string
	Rows  []Row
}

const (
	columnGap  = "  "
	valueWidth = len("false")
	// minDescWidth keeps descriptions readable on narrow terminals.
	minDescWidth = 20
)

// RenderFlagTable renders groups as aligned columns: key, default, current,
// description. Descriptions are truncated to fit width; width <= 0 disables
// truncation. Current values that differ from the default use the
// Overridden style.
func RenderFlagTable(groups []Group, st *styles.Set, width int) string {
	keyWidth := 0
	for _, g := range groups {
		for _, r := range g.Rows {
			if w := runewidth.StringWidth(r.Key); w > keyWidth {
				keyWidth = w
			}
		}
	}

	descWidth := 0
	if width > 0 {
		descWidth = width - 2 - keyWidth - 2*(len(columnGap)+valueWidth) - len(columnGap)
		if descWidth < minDescWidth {
			descWidth = minDescWidth
		}
	}

	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(st.GroupTitle.Render(g.Title))
		sb.WriteString("\n")
		if len(g.Rows) == 0 {
			sb.WriteString("  ")
			sb.WriteString(st.Muted.Render("(none)"))
			sb.WriteString("\n")
			continue
		}
		for _, r := range g.Rows {
			sb.WriteString("  ")
			sb.WriteString(st.Key.Render(runewidth.FillRight(r.Key, keyWidth)))
			sb.WriteString(columnGap)
			sb.WriteString(renderBool(st, r.Default, false))
			sb.WriteString(columnGap)
			sb.WriteString(renderBool(st, r.Current, r.Current != r.Default))
			if r.Description != "" {
				desc := r.Description
				if descWidth > 0 {
					desc = runewidth.Truncate(desc, descWidth, "…")
				}
				sb.WriteString(columnGap)
				sb.WriteString(st.Muted.Render(desc))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderBool(st *styles.Set, v, overridden bool) string {
	text := runewidth.FillRight(strconv.FormatBool(v), valueWidth)
	switch {
	case overridden:
		return st.Overridden.Render(text)
	case v:
		return st.Enabled.Render(text)
	default:
		return st.Disabled.Render(text)
	}
}
