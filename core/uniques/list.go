package uniques

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// List is a set of normalized ability forms (the known list or the unwanted list).
// Each key remembers the first line it was loaded from.
type List map[Key]string

// NewList normalizes every non-blank line into a List.
func NewList(lines []string) List {
	l := make(List, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key := Normalize(line)
		if _, exists := l[key]; !exists {
			l[key] = line
		}
	}
	return l
}

// LoadList reads a List from a text file with one ability per line.
// An empty path yields an empty list.
func LoadList(path string) (List, error) {
	if path == "" {
		return List{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening uniques list: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading uniques list %s: %w", path, err)
	}
	return NewList(lines), nil
}

// Contains reports whether the normalized form of s is in the list.
func (l List) Contains(s string) bool {
	_, ok := l[Normalize(s)]
	return ok
}

// Has reports whether the key is in the list.
func (l List) Has(key Key) bool {
	_, ok := l[key]
	return ok
}

// Keys returns the keys in sorted order.
func (l List) Keys() []Key {
	keys := make([]Key, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Suggest returns the closest known form to s by edit distance, when one is close enough.
func (l List) Suggest(s string) (string, bool) {
	key := string(Normalize(s))
	if key == "" {
		return "", false
	}

	best := ""
	bestDist := suggestionLimit(len(key)) + 1
	for _, cand := range l.Keys() {
		dist := levenshtein.ComputeDistance(key, string(cand))
		if dist < bestDist {
			best = l[cand]
			bestDist = dist
		}
	}
	return best, best != ""
}

func suggestionLimit(length int) int {
	switch {
	case length <= 8:
		return 2
	case length <= 24:
		return 4
	default:
		return length / 6
	}
}
