package wordlist

import "strings"

// FilterFunc returns true when a phrase should be kept.
type FilterFunc func(string) bool

// FilterFor returns the phrase filter with the given name. Unknown names keep
// every phrase.
func FilterFor(name string) FilterFunc {
	switch strings.ToLower(name) {
	case "romaji":
		return filterRomaji
	default:
		return func(string) bool { return true }
	}
}

// Apply returns the phrases accepted by f and the number rejected.
func Apply(phrases []string, f FilterFunc) ([]string, int) {
	kept := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if f(p) {
			kept = append(kept, p)
		}
	}
	return kept, len(phrases) - len(kept)
}

func filterRomaji(phrase string) bool {
	if phrase == "" {
		return false
	}
	for i := 0; i < len(phrase); i++ {
		ch := phrase[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch == ' ', ch == '-', ch == '\'':
		default:
			return false
		}
	}
	return true
}
