package service

import "strings"

// sanitizeUTF8 strips invalid byte sequences from user-supplied strings
// before they reach the database or the notification feed.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
