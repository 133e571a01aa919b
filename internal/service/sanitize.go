package service

import (
	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer cleans member-authored rich text before it is stored or rendered.
type TextSanitizer interface {
	Sanitize(raw string) string
}

type richTextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer returns the sanitizer used for event descriptions and announcement bodies.
// Basic inline formatting, lists and absolute links survive; everything else is stripped.
func NewTextSanitizer() TextSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "ul", "ol", "li", "strong", "em", "b", "i", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("https", "http", "mailto")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return &richTextSanitizer{policy: p}
}

func (s *richTextSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return s.policy.Sanitize(raw)
}

func sanitizerOrDefault(s TextSanitizer) TextSanitizer {
	if s == nil {
		return NewTextSanitizer()
	}
	return s
}
