package analyzer

import "testing"

func TestCountTokensEmpty(t *testing.T) {
	tok := NewTokenizer()
	if got := tok.CountTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
	if got := tok.CountTokens("   \n\t "); got != 0 {
		t.Errorf("expected 0 tokens for whitespace, got %d", got)
	}
}

func TestCountTokensGrowsWithText(t *testing.T) {
	tok := NewTokenizer()

	short := tok.CountTokens("one two three")
	long := tok.CountTokens("one two three four five six seven eight nine ten")

	if short <= 0 {
		t.Errorf("expected positive count for short text, got %d", short)
	}
	if long <= short {
		t.Errorf("expected longer text to count more tokens: %d <= %d", long, short)
	}
}

func TestCountTokensDeterministic(t *testing.T) {
	tok := NewTokenizer()
	text := "The same text must always count the same."

	first := tok.CountTokens(text)
	for i := 0; i < 5; i++ {
		if got := tok.CountTokens(text); got != first {
			t.Fatalf("count changed between calls: %d != %d", got, first)
		}
	}
}

func TestCountTokensPunctuationIgnored(t *testing.T) {
	tok := NewTokenizer()

	plain := tok.CountTokens("alpha beta gamma")
	decorated := tok.CountTokens("alpha, beta... gamma!")

	if plain != decorated {
		t.Errorf("punctuation changed the count: %d != %d", plain, decorated)
	}
}
