package models

// Member identifies one person in the trip roster.
type Member string

// Roster is the fixed, closed set of members who can pay or owe in the
// ledger. It is loaded from configuration at startup; there is no
// runtime create/destroy for members.
type Roster []Member

// Contains reports whether m belongs to the roster.
func (r Roster) Contains(m Member) bool {
	for _, member := range r {
		if member == m {
			return true
		}
	}
	return false
}

// Normalize turns an arbitrary involved list into a valid involvement
// set: unknown members are dropped, duplicates collapse, and the result
// keeps roster order. An empty result (including an empty or nil input)
// defaults to the entire roster, so every stored entry always has at
// least one involved member.
func (r Roster) Normalize(involved []Member) []Member {
	present := make(map[Member]bool, len(involved))
	for _, m := range involved {
		if r.Contains(m) {
			present[m] = true
		}
	}
	if len(present) == 0 {
		return append([]Member(nil), r...)
	}
	out := make([]Member, 0, len(present))
	for _, m := range r {
		if present[m] {
			out = append(out, m)
		}
	}
	return out
}
