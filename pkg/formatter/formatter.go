package formatter

import (
	"strconv"
	"strings"
)

// FormatNumber renders an integer with commas as thousands separators,
// e.g. 1234567 -> "1,234,567".
func FormatNumber(n int) string {
	s := strconv.Itoa(n)

	var sign string
	if n < 0 {
		sign = "-"
		s = s[1:]
	}

	if len(s) <= 3 {
		return sign + s
	}

	var sb strings.Builder
	sb.WriteString(sign)

	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// markdownV2Specials is the character set Telegram requires escaped in
// MarkdownV2 text.
const markdownV2Specials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdownV2 escapes special characters in Markdown V2 format.
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(markdownV2Specials, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
