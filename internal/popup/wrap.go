package popup

import "strings"

// Wrap splits message into lines no wider than maxWidth, as reported by
// measure. Lines break at the last space that keeps them within the limit.
// Explicit newlines start a new line (empty lines are kept), runs of spaces
// collapse to one, and a single word wider than the limit is split.
// A maxWidth narrower than the widest rune in message is raised to that
// rune's width, since no line can hold less than one rune.
func Wrap(message string, maxWidth int, measure func(string) int) []string {
	maxWidth = max(maxWidth, 1)
	for _, r := range message {
		maxWidth = max(maxWidth, measure(string(r)))
	}

	var lines []string
	for _, para := range strings.Split(message, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			for measure(word) > maxWidth {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head, tail := splitWord(word, maxWidth, measure)
				lines = append(lines, head)
				word = tail
			}
			if word == "" {
				continue
			}

			if line == "" {
				line = word
				continue
			}
			if candidate := line + " " + word; measure(candidate) <= maxWidth {
				line = candidate
			} else {
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitWord returns the longest prefix of word that fits maxWidth and the rest.
// At least one rune is always consumed.
func splitWord(word string, maxWidth int, measure func(string) int) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
