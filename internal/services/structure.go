package services

import (
	"strings"
	"unicode"

	"github.com/Lllllllleong/legalease/internal/models"
)

// markdownShape counts the structural tokens a translation must keep.
type markdownShape struct {
	headings  int
	listItems int
}

// measureMarkdown counts ATX headings and list items outside fenced code blocks.
func measureMarkdown(md string) markdownShape {
	var shape markdownShape
	inFence := false
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		switch {
		case isHeading(trimmed):
			shape.headings++
		case isListItem(trimmed):
			shape.listItems++
		}
	}
	return shape
}

func isHeading(line string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	return level == len(line) || line[level] == ' ' || line[level] == '\t'
}

func isListItem(line string) bool {
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*' || line[0] == '+') && line[1] == ' ' {
		// A thematic break such as "- - -" is not a list item.
		return strings.Trim(line, "-*+ ") != ""
	}

	// Ordered items: one or more digits in any script followed by "." or ")".
	runes := []rune(line)
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	if i == 0 || i+1 >= len(runes) {
		return false
	}
	return (runes[i] == '.' || runes[i] == ')') && runes[i+1] == ' '
}

// CompareStructure reports whether output kept the heading and list-item
// counts of source.
func CompareStructure(source, output string) *models.StructureReport {
	src := measureMarkdown(source)
	out := measureMarkdown(output)
	return &models.StructureReport{
		SourceHeadings:  src.headings,
		OutputHeadings:  out.headings,
		SourceListItems: src.listItems,
		OutputListItems: out.listItems,
		Preserved:       src == out,
	}
}
