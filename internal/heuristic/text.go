package heuristic

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const blockSelector = "p, div, section, article, blockquote, h1, h2, h3, h4, h5, h6, tr, pre, figure"

// PlainText strips markup from a rendered post body. Block elements end a
// line and list items start one with "- " so line-based rules still see
// the original structure.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
		s.AppendHtml("\n")
	})
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := norm.NFKC.String(doc.Text())

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}

// Truncate keeps at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

var sentenceEnds = map[rune]bool{'。': true, '!': true, '?': true, '.': true, '\n': true}

// sentences splits text on terminal punctuation and line breaks.
func sentences(text string) []string {
	var (
		out []string
		b   strings.Builder
	)
	runes := []rune(text)
	for i, r := range runes {
		if sentenceEnds[r] {
			// "3.5" and "e.g." are not sentence ends.
			if r == '.' && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
				b.WriteRune(r)
				continue
			}
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type script int

const (
	scriptNone script = iota
	scriptWord
	scriptHan
	scriptKatakana
	scriptHiragana
)

func scriptOf(r rune) script {
	switch {
	case unicode.Is(unicode.Han, r):
		return scriptHan
	case unicode.Is(unicode.Katakana, r) || r == 'ー':
		return scriptKatakana
	case unicode.Is(unicode.Hiragana, r):
		return scriptHiragana
	case unicode.IsLetter(r) || unicode.IsNumber(r):
		return scriptWord
	}
	return scriptNone
}

// tokens splits lowercased text into words. Japanese has no spaces, so a
// change of script ends a word: kanji and katakana runs are words, hiragana
// runs are particles and inflections and are dropped.
func tokens(text string) []string {
	var (
		out  []string
		b    strings.Builder
		prev script
	)
	flush := func() {
		if b.Len() > 0 && prev != scriptHiragana {
			out = append(out, b.String())
		}
		b.Reset()
	}

	for _, r := range strings.ToLower(text) {
		sc := scriptOf(r)
		if sc != prev {
			flush()
			prev = sc
		}
		if sc != scriptNone {
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + "…"
}
