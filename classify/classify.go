// Package classify decides the semantic kind of a single document block.
//
// Image and table blocks classify directly from their structural tag.
// Paragraphs are matched against the source style name first; when the
// style is absent or generic, a text heuristic decides between heading
// and paragraph. Classification is deterministic, position-independent
// and side-effect free.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/pagecraft/model"
)

// DefaultHeadingCharThreshold is the maximum text length, in runes, for
// the heuristic to consider a styleless paragraph a heading.
const DefaultHeadingCharThreshold = 80

// defaultHeuristicLevel is the level assigned to headings detected by
// the caps/punctuation heuristic when no outline numbering is present.
const defaultHeuristicLevel = 2

var (
	// stylePattern matches Word heading style names and IDs
	// ("Heading 1", "heading2", "HEADING 3").
	stylePattern = regexp.MustCompile(`(?i)^heading\s*([1-9])`)

	// numberedPattern matches outline numbering like "2 ", "2.1 ", "2.1.1 ".
	numberedPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+`)
)

// Config holds the heuristic constants. Keeping them as configuration
// rather than inline literals keeps the decision testable in isolation.
type Config struct {
	// HeadingCharThreshold is the maximum rune length for heuristic
	// heading detection. Zero means DefaultHeadingCharThreshold.
	HeadingCharThreshold int
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{HeadingCharThreshold: DefaultHeadingCharThreshold}
}

func (c Config) threshold() int {
	if c.HeadingCharThreshold > 0 {
		return c.HeadingCharThreshold
	}
	return DefaultHeadingCharThreshold
}

// Classify returns the semantic kind of a raw block and, for headings,
// the heading level (1-6). Ambiguous paragraphs degrade to
// KindParagraph rather than failing.
func (c Config) Classify(b model.RawBlock) (model.Kind, int) {
	switch blk := b.(type) {
	case model.RawImage:
		return model.KindImage, 0
	case *model.RawImage:
		return model.KindImage, 0
	case model.RawTable:
		return model.KindTable, 0
	case *model.RawTable:
		return model.KindTable, 0
	case model.RawParagraph:
		return c.classifyParagraph(blk)
	case *model.RawParagraph:
		return c.classifyParagraph(*blk)
	default:
		return model.KindUnknown, 0
	}
}

func (c Config) classifyParagraph(p model.RawParagraph) (model.Kind, int) {
	text := strings.TrimSpace(p.Text())
	if text == "" {
		return model.KindEmpty, 0
	}

	// Explicit Word styles win over any text heuristic.
	if level, ok := styleLevel(p.StyleName); ok {
		return model.KindHeading, level
	}
	if level, ok := styleLevel(p.StyleID); ok {
		return model.KindHeading, level
	}

	if level, ok := c.headingHeuristic(text); ok {
		return model.KindHeading, level
	}

	return model.KindParagraph, 0
}

// styleLevel maps a heading style name or ID to its level.
// "Title" counts as a level-1 heading.
func styleLevel(style string) (int, bool) {
	if style == "" {
		return 0, false
	}
	if m := stylePattern.FindStringSubmatch(style); m != nil {
		level := int(m[1][0] - '0')
		if level > 6 {
			level = 6
		}
		return level, true
	}
	if strings.EqualFold(strings.TrimSpace(style), "title") {
		return 1, true
	}
	return 0, false
}

// headingHeuristic decides whether styleless text is a heading.
// Text must be short enough, and then one of: carry outline numbering,
// be fully capitalized, or lack trailing sentence punctuation.
func (c Config) headingHeuristic(text string) (int, bool) {
	if len([]rune(text)) > c.threshold() {
		return 0, false
	}

	if m := numberedPattern.FindStringSubmatch(text); m != nil {
		return numberedLevel(m[1]), true
	}
	if isAllUpper(text) {
		return defaultHeuristicLevel, true
	}
	if !hasTrailingPunctuation(text) {
		return defaultHeuristicLevel, true
	}
	return 0, false
}

// numberedLevel derives the heading level from outline numbering: the
// level is the number of dot-separated numeric groups, clamped to 1-6.
// "2" maps to level 1, "2.1" to level 2, "2.1.1" to level 3.
func numberedLevel(numbering string) int {
	level := strings.Count(numbering, ".") + 1
	if level > 6 {
		level = 6
	}
	return level
}

// isAllUpper reports whether text contains at least one letter and no
// lowercase letters.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// hasTrailingPunctuation reports whether text ends in sentence
// punctuation, which disqualifies it as a heading.
func hasTrailingPunctuation(text string) bool {
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?") ||
		strings.HasSuffix(text, ";") ||
		strings.HasSuffix(text, ":")
}
