package syntax

// TokenSet is a bitset over token kinds.
type TokenSet [4]uint64

// NewTokenSet returns the set containing kinds. Node kinds are rejected.
func NewTokenSet(kinds ...Kind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		if !k.IsToken() {
			panic("syntax: token set cannot contain node kind " + k.String())
		}
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s TokenSet) Contains(k Kind) bool {
	if !k.IsToken() {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

func (s TokenSet) Union(other TokenSet) TokenSet {
	return TokenSet{s[0] | other[0], s[1] | other[1], s[2] | other[2], s[3] | other[3]}
}

// With returns a copy of s that also contains kinds.
func (s TokenSet) With(kinds ...Kind) TokenSet {
	return s.Union(NewTokenSet(kinds...))
}

func (s TokenSet) IsEmpty() bool {
	return s == TokenSet{}
}
