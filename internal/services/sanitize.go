package services

import (
	"regexp"
	"strings"
)

type replaceRule struct {
	re   *regexp.Regexp
	repl string
}

// Order matters: italic must run after bold, and list markers only see real line starts.
var markdownRules = []replaceRule{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile("`(.*?)`"), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\[(.*?)\]\(.*?\)`), "$1"},
	{regexp.MustCompile(`(?m)^\s*[-*+]\s+`), "• "},
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},
}

// SanitizeReply strips markdown from a model reply so it reads as plain text.
func SanitizeReply(text string) string {
	for _, rule := range markdownRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\`, "")
	return strings.TrimSpace(text)
}
