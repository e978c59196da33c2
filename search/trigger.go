package search

import "strings"

// Trigger keywords are matched as case-insensitive substrings of the latest
// user message.
var triggerKeywords = []string{"latest", "current", "news", "today", "recent"}

// Needs_Search reports whether a user message should trigger web search
// augmentation.
func Needs_Search(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range triggerKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
