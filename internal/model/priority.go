package model

import "strings"

// PriorityList is the bounded set of command-name substrings the user has
// marked as priority. Entries match processes by substring, not identity.
type PriorityList struct {
	names []string
	cap   int
}

func NewPriorityList(capacity int) *PriorityList {
	if capacity < 1 {
		capacity = 1
	}
	return &PriorityList{cap: capacity}
}

// Add appends a command name unless the list is full or the exact name is
// already present. Reports whether the entry was added.
func (pl *PriorityList) Add(name string) bool {
	if name == "" || len(pl.names) >= pl.cap {
		return false
	}
	for _, n := range pl.names {
		if n == name {
			return false
		}
	}
	pl.names = append(pl.names, name)
	return true
}

// RemoveLast pops the most recently added entry.
func (pl *PriorityList) RemoveLast() {
	if len(pl.names) > 0 {
		pl.names = pl.names[:len(pl.names)-1]
	}
}

func (pl *PriorityList) Len() int { return len(pl.names) }
func (pl *PriorityList) Cap() int { return pl.cap }

// Names returns a copy of the current entries in insertion order.
func (pl *PriorityList) Names() []string {
	out := make([]string, len(pl.names))
	copy(out, pl.names)
	return out
}

// Matches reports whether any entry is a substring of the command name.
func (pl *PriorityList) Matches(command string) bool {
	return MatchesAny(pl.names, command)
}

// MatchesAny reports whether any name in the list is a substring of the
// candidate command name.
func MatchesAny(names []string, command string) bool {
	for _, n := range names {
		if strings.Contains(command, n) {
			return true
		}
	}
	return false
}
