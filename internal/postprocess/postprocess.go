// Package postprocess strips chat-model artifacts from an extracted
// translation: reasoning blocks, conversational preambles, trailing notes and
// wrapping quotes.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean runs every phase in order and returns the trimmed result:
//  1. reasoning block removal
//  2. preamble removal ("Sure! Here is the translation ...:")
//  3. trailing note removal ("Note: ..." / "(Note: ...)")
//  4. quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removePreamble(text)
	text = removeTrailingNotes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so every tag pair is spelled out.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// An opened block without its closing tag means the model ran out of tokens.
var truncatedThinkingRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>).*$`)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var (
	// "Sure!", "Certainly,", "Of course." opening a reply.
	courtesyRe = regexp.MustCompile(`(?i)^(?:sure|certainly|of course|okay)[!,.]?\s+`)

	// "Here is the translation of "..." in Hindi:" and shorter variants. A
	// colon is required so real sentences starting with "Here is" survive.
	leadInRe = regexp.MustCompile(`(?i)^here(?:'s| is) (?:the|your|my) (?:hindi )?translation(?: of [^\n:]*?)?(?: (?:in|into|to) hindi)?\s*:`)

	// A repeated marker label such as "Translation:" or "Hindi:".
	labelRe = regexp.MustCompile(`(?i)^(?:hindi translation|translation|hindi)\s*:`)
)

func removePreamble(text string) string {
	text = strings.TrimSpace(text)
	if loc := courtesyRe.FindStringIndex(text); loc != nil {
		rest := strings.TrimSpace(text[loc[1]:])
		if leadInRe.MatchString(rest) {
			text = rest
		}
	}
	if loc := leadInRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}
	if loc := labelRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}
	return text
}

// trailingNoteRe matches a note the model appends on its own line after the
// translation, through the end of the text.
var trailingNoteRe = regexp.MustCompile(`(?is)\n\s*\(?\s*(?:note|explanation|transliteration)\s*:.*$`)

func removeTrailingNotes(text string) string {
	return strings.TrimSpace(trailingNoteRe.ReplaceAllString(text, ""))
}

// removeQuoteWrapping drops one matching pair of outer quotes when they wrap
// the whole text. Supported pairs: "…" '…' “…” ‘…’ «…»
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
