package viewer

import (
	"strings"
	"unicode/utf8"
)

const (
	truncationMarker = "..."
	tabReplacement   = "    "
)

// TooltipLines splits text into display lines of at most maxColumns runes.
// At most maxLines lines are kept; a dropped remainder is marked on the last line.
// Non-positive limits disable the corresponding bound.
func TooltipLines(text string, maxColumns int, maxLines int) []string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\t", tabReplacement)
	normalized = strings.TrimRight(normalized, "\n")
	var lines []string
	for _, rawLine := range strings.Split(normalized, "\n") {
		lines = append(lines, wrapLine(rawLine, maxColumns)...)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = markTruncated(lines[maxLines-1], maxColumns)
	}
	return lines
}

func wrapLine(line string, maxColumns int) []string {
	if maxColumns <= 0 || utf8.RuneCountInString(line) <= maxColumns {
		return []string{line}
	}
	var wrapped []string
	runes := []rune(line)
	for len(runes) > maxColumns {
		breakAt := maxColumns
		for index := maxColumns; index > maxColumns/2; index-- {
			if runes[index] == ' ' {
				breakAt = index
				break
			}
		}
		wrapped = append(wrapped, strings.TrimRight(string(runes[:breakAt]), " "))
		runes = runes[breakAt:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return append(wrapped, string(runes))
}

func markTruncated(line string, maxColumns int) string {
	runes := []rune(line)
	markerLength := len(truncationMarker)
	if maxColumns > 0 && maxColumns <= markerLength {
		return truncationMarker[:maxColumns]
	}
	if maxColumns > markerLength && len(runes) > maxColumns-markerLength {
		runes = runes[:maxColumns-markerLength]
	}
	return string(runes) + truncationMarker
}

// PlaceTooltip returns the top-left corner of a box of the given size shown next to the pointer.
// The box is shifted back inside the viewport when it would overflow the right or bottom edge.
func PlaceTooltip(pointerX int, pointerY int, offset int, boxWidth int, boxHeight int, viewportWidth int, viewportHeight int) (int, int) {
	x := pointerX + offset
	y := pointerY + offset
	if x+boxWidth > viewportWidth {
		x = viewportWidth - boxWidth
	}
	if y+boxHeight > viewportHeight {
		y = pointerY - offset - boxHeight
	}
	return max(x, 0), max(y, 0)
}
