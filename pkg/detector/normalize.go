package detector

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
// These are compiled once at startup instead of on every call
var (
	reWhitespaceRun = regexp.MustCompile(`\s+`)

	// Single separator characters sitting between two word characters
	reSepBetweenWords = regexp.MustCompile(`(\w)[\-_|~:;'](\w)`)
	reSpacedDot       = regexp.MustCompile(`(\w)\s*\.\s*(\w)`)

	// Runs of 2-4 single letters separated by whitespace or separator punctuation
	reSingle4 = regexp.MustCompile(`\b([A-Za-z])[\s._\-]+([A-Za-z])[\s._\-]+([A-Za-z])[\s._\-]+([A-Za-z])\b`)
	reSingle3 = regexp.MustCompile(`\b([A-Za-z])[\s._\-]+([A-Za-z])[\s._\-]+([A-Za-z])\b`)
	reSingle2 = regexp.MustCompile(`\b([A-Za-z])[\s._\-]+([A-Za-z])\b`)

	// Secondary collapse for separator-joined letter runs like "s.l.o.t"
	reJoined4 = regexp.MustCompile(`([A-Za-z])[._\-]([A-Za-z])[._\-]([A-Za-z])[._\-]([A-Za-z])`)

	// Adjacent short tokens ("s l ot", "ga cor")
	reShortPair    = regexp.MustCompile(`\b([A-Za-z]{1,3})\s+([A-Za-z]{1,3})\b`)
	reShortTriple  = regexp.MustCompile(`\b([A-Za-z]{1,3})\s+([A-Za-z]{1,3})\s+([A-Za-z]{1,3})\b`)
	reSepWordRun   = regexp.MustCompile(`\b[A-Za-z](?:[\s._\-]+[A-Za-z]){2,}\b`)
	reNumGroupJunk = regexp.MustCompile(`[\s\-.]+`)

	// Word token followed by one or more separated number groups
	reTrailingNums = regexp.MustCompile(`\b([A-Za-z]+)((?:[\s\-.]+[0-9]+)+)\b`)
	reWordNumWord  = regexp.MustCompile(`\b([A-Za-z]+)\s+([0-9]+)\s+([A-Za-z]+)\b`)
)

// combiningDiacritics matches the Unicode combining diacritical marks block.
var combiningDiacritics = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

var cleanTextChain = transform.Chain(norm.NFD, runes.Remove(combiningDiacritics), norm.NFC)

// lookAlikeMap rewrites symbol/digit look-alikes to their letter equivalents.
// Applied globally by CleanWeirdPatterns, so plain numbers are rewritten too;
// only the aggressive cleaning passes use it.
var lookAlikeMap = map[rune]rune{
	'¢': 'c', '€': 'e', '£': 'l', '¥': 'y', '@': 'a',
	'5': 's', '3': 'e', '1': 'i', '0': 'o', '4': 'a',
	'7': 't', '6': 'g', '9': 'g', '8': 'b',
}

// leetFixedMap is the fixed substitution table used by ConvertCommentFixed.
var leetFixedMap = map[rune]rune{
	'1': 'i', '2': 'z', '3': 'e', '4': 'a', '5': 's',
	'6': 'g', '7': 't', '8': 'b', '9': 'g', '0': 'o',
	'!': 'i', '&': 'e', '@': 'a', '#': 'h', '$': 's',
	'?': 'q', '+': 't', '*': 'x', '_': 'l', '%': 'o', '|': 'l',
}

// CleanText strips combining diacritical marks (U+0300-U+036F): decompose,
// drop the marks, recompose. Total over any string input and idempotent.
func CleanText(text string) string {
	out, _, err := transform.String(cleanTextChain, text)
	if err != nil {
		return text
	}
	return out
}

// CleanWeirdPatterns collapses whitespace, removes single separator characters
// wedged between word characters (including space-surrounded dots), and maps
// symbol/digit look-alikes to their letter equivalents.
func CleanWeirdPatterns(text string) string {
	text = collapseWhitespace(text)

	// Separator removal creates new adjacencies ("s.l.o.t" needs more than
	// one sweep), so run to a fixed point with a small bound.
	for i := 0; i < 4; i++ {
		next := reSepBetweenWords.ReplaceAllString(text, "$1$2")
		next = reSpacedDot.ReplaceAllString(next, "$1$2")
		if next == text {
			break
		}
		text = next
	}

	return strings.Map(func(r rune) rune {
		if mapped, ok := lookAlikeMap[r]; ok {
			return mapped
		}
		return r
	}, text)
}

// ReconstructSeparatedWords collapses runs of 2-4 single letters separated by
// whitespace or separator punctuation into one token, handling 4-letter runs
// first, then 3, then 2, plus a secondary collapse for separator-joined runs
// like "s.l.o.t". Idempotent after two applications; callers that need full
// convergence on deeply nested separations re-apply it.
func ReconstructSeparatedWords(text string) string {
	text = replaceStable(reSingle4, text, "$1$2$3$4")
	text = replaceStable(reSingle3, text, "$1$2$3")
	text = replaceStable(reSingle2, text, "$1$2")
	text = replaceStable(reJoined4, text, "$1$2$3$4")
	return text
}

// CombineShortWords merges adjacent 1-3 letter tokens pairwise (two passes)
// and then merges runs of three. Defeats "s l ot"-style spacing after the
// other cleaners have run.
func CombineShortWords(text string) string {
	text = reShortPair.ReplaceAllString(text, "$1$2")
	text = reShortPair.ReplaceAllString(text, "$1$2")
	text = reShortTriple.ReplaceAllString(text, "$1$2$3")
	return text
}

// MergeTextWithTrailingNumbers joins a word token followed by separated number
// groups into one alphanumeric token ("judi 123 456" -> "judi123456") and
// joins word-number-word triples. Reconstructed legitimate content tends to
// exhibit this shape, so the scoring pipeline treats a change here as a
// negative gambling signal.
func MergeTextWithTrailingNumbers(text string) string {
	text = reTrailingNums.ReplaceAllStringFunc(text, func(m string) string {
		sub := reTrailingNums.FindStringSubmatch(m)
		return sub[1] + reNumGroupJunk.ReplaceAllString(sub[2], "")
	})
	text = reWordNumWord.ReplaceAllString(text, "$1$2$3")
	return text
}

// ConvertCommentFixed applies the fixed leet-speak substitution table to each
// whitespace token, leaving the last ignoreLastDigits characters of every
// token untouched. Searching at several ignore depths lets the pattern engine
// distinguish disguised letters from genuinely numeric suffixes.
func ConvertCommentFixed(comment string, ignoreLastDigits int) string {
	if comment == "" {
		return comment
	}
	words := strings.Split(comment, " ")
	for wi, word := range words {
		runesIn := []rune(word)
		cut := len(runesIn) - ignoreLastDigits
		if cut <= 0 {
			continue
		}
		for i := 0; i < cut; i++ {
			if mapped, ok := leetFixedMap[runesIn[i]]; ok {
				runesIn[i] = mapped
			}
		}
		words[wi] = string(runesIn)
	}
	return strings.Join(words, " ")
}

// hasSeparatedWords reports whether the text carries a run of three or more
// separated single letters ("Z.e.u.s", "g a c o r").
func hasSeparatedWords(text string) bool {
	return reSepWordRun.MatchString(text)
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(reWhitespaceRun.ReplaceAllString(text, " "))
}

// replaceStable applies a replacement until the text stops changing, with a
// small iteration bound to stay safely linear.
func replaceStable(re *regexp.Regexp, text, repl string) string {
	for i := 0; i < 4; i++ {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return next
		}
		text = next
	}
	return text
}
