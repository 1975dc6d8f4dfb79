package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestConversationTitleKeepsShortMessages(t *testing.T) {
	if got := conversationTitle("Hello there"); got != "Hello there" {
		t.Fatalf("short messages must pass through, got %q", got)
	}
}

func TestConversationTitleTruncatesOnRuneBoundary(t *testing.T) {
	message := strings.Repeat("学", 100)

	title := conversationTitle(message)

	if !utf8.ValidString(title) {
		t.Fatal("truncated title must stay valid UTF-8")
	}
	if n := utf8.RuneCountInString(title); n != 80 {
		t.Fatalf("expected 80 runes, got %d", n)
	}
}

func TestConversationTitleExactLimit(t *testing.T) {
	message := strings.Repeat("a", 80)

	if got := conversationTitle(message); got != message {
		t.Fatalf("a message at the limit must not be truncated, got %d chars", len(got))
	}
}
