package popup

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/buildtree/internal/core"
)

func runeCount(s string) int { return utf8.RuneCountInString(s) }

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		maxWidth int
		expected []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks at last space", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"exact width", "abcd efgh", 9, []string{"abcd efgh"}},
		{"collapses spaces", "a   b    c", 10, []string{"a b c"}},
		{"keeps newlines", "\nfirst\n\nsecond", 20, []string{"", "first", "", "second"}},
		{"splits long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word mid line", "ab abcdefgh cd", 4, []string{"ab", "abcd", "efgh", "cd"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.message, tt.maxWidth, runeCount)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Wrap(%q, %d) = %q, expected %q", tt.message, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestWrapWideRunes(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		maxWidth int
		expected []string
	}{
		{"narrower than a rune", "日本語 テスト", 1, []string{"日", "本", "語", "テ", "ス", "ト"}},
		{"mixed widths", "a日", 1, []string{"a", "日"}},
		{"odd width", "日本語", 3, []string{"日", "本", "語"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.message, tt.maxWidth, core.TextWidth)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Wrap(%q, %d) = %q, expected %q", tt.message, tt.maxWidth, got, tt.expected)
			}
			for _, line := range got {
				if w := core.TextWidth(line); w > max(tt.maxWidth, 2) {
					t.Errorf("line %q is %d cells wide", line, w)
				}
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	letters := "abcdefghijklmnopqrstuvwxyz"

	for i := 0; i < 500; i++ {
		maxWidth := 5 + rng.Intn(40)

		// Build a message of words that each fit the limit, with random
		// spacing and the odd newline.
		var sb strings.Builder
		words := 1 + rng.Intn(25)
		for w := 0; w < words; w++ {
			n := 1 + rng.Intn(maxWidth)
			for k := 0; k < n; k++ {
				sb.WriteByte(letters[rng.Intn(len(letters))])
			}
			switch rng.Intn(6) {
			case 0:
				sb.WriteString("\n")
			case 1:
				sb.WriteString("   ")
			default:
				sb.WriteString(" ")
			}
		}
		message := sb.String()

		lines := Wrap(message, maxWidth, runeCount)
		for _, line := range lines {
			if runeCount(line) > maxWidth {
				t.Fatalf("line %q wider than %d (message %q)", line, maxWidth, message)
			}
		}

		joined := strings.Fields(strings.Join(lines, " "))
		if !reflect.DeepEqual(joined, strings.Fields(message)) {
			t.Fatalf("rejoined words differ for %q: %q", message, lines)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trunc"},
		{"número", 3, "núm"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.in, tt.n, got, tt.expected)
		}
	}
}
