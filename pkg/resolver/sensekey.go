package resolver

import (
	"fmt"
	"strconv"
	"strings"
)

// lemmaEscapes maps the punctuation that may not appear in an XML id to
// the markers the Open English Wordnet uses for it. Any other character
// outside the plain set becomes a "-XXXX-" codepoint escape.
var lemmaEscapes = []struct {
	marker string
	ch     rune
}{
	{"-ap-", '\''},
	{"-sl-", '/'},
	{"-cn-", ':'},
	{"-cm-", ','},
	{"-ex-", '!'},
	{"-pl-", '+'},
	{"-lb-", '('},
	{"-rb-", ')'},
}

// EscapeLemma rewrites a lemma into the form used inside entry and
// sense ids: letters, digits, '.', '-' and '_' pass through, spaces
// become underscores, and everything else is escaped.
func EscapeLemma(lemma string) string {
	var b strings.Builder
	for _, r := range lemma {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		default:
			escaped := false
			for _, e := range lemmaEscapes {
				if e.ch == r {
					b.WriteString(e.marker)
					escaped = true
					break
				}
			}
			if !escaped {
				fmt.Fprintf(&b, "-%04x-", r)
			}
		}
	}
	return b.String()
}

// UnescapeLemma is the inverse of EscapeLemma. A hyphen that does not
// start a known marker or codepoint escape is a literal hyphen.
func UnescapeLemma(escaped string) string {
	var b strings.Builder
	for i := 0; i < len(escaped); {
		if escaped[i] != '-' {
			b.WriteByte(escaped[i])
			i++
			continue
		}
		rest := escaped[i:]
		matched := false
		for _, e := range lemmaEscapes {
			if strings.HasPrefix(rest, e.marker) {
				b.WriteRune(e.ch)
				i += len(e.marker)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if r, n, ok := codepointEscape(rest); ok {
			b.WriteRune(r)
			i += n
			continue
		}
		b.WriteByte('-')
		i++
	}
	return b.String()
}

// codepointEscape reads a "-XXXX-" escape from the start of s.
func codepointEscape(s string) (rune, int, bool) {
	if len(s) < 6 || s[5] != '-' {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:5], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 6, true
}

// SenseID derives the sense id an Open English Wordnet edition mints
// for a sense key, so "abandon%2:40:01::" under prefix "oewn" becomes
// "oewn-abandon__2.40.01..".
func SenseID(prefix, senseKey string) (string, error) {
	lemma, lexSense, ok := strings.Cut(senseKey, "%")
	if !ok || lemma == "" || lexSense == "" {
		return "", fmt.Errorf("sense key %q is not in lemma%%lex_sense form", senseKey)
	}
	return prefix + "-" + EscapeLemma(lemma) + "__" + strings.ReplaceAll(lexSense, ":", "."), nil
}

// KeyFromSenseID recovers the sense key encoded in a sense id minted
// the way SenseID mints them. The lemma half is unescaped and
// lowercased, since sense keys are always lower case. Neither escaped
// lemmas nor the lex_sense tail contain a double underscore, so the
// first one is the separator.
func KeyFromSenseID(prefix, senseID string) (string, bool) {
	marker := prefix + "-"
	if !strings.HasPrefix(senseID, marker) {
		return "", false
	}
	rest := senseID[len(marker):]
	i := strings.Index(rest, "__")
	if i <= 0 || i+2 >= len(rest) {
		return "", false
	}
	lemma := strings.ToLower(UnescapeLemma(rest[:i]))
	lexSense := strings.ReplaceAll(rest[i+2:], ".", ":")
	return lemma + "%" + lexSense, true
}
