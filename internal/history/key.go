package history

// Key identifies a game: season, week and the unordered pair of teams.
type Key struct {
	Season int
	Week   int
	Low    string
	High   string
}

// NewKey orders the team names so the key is the same whichever side a
// team was listed on.
func NewKey(season, week int, teamA, teamB string) Key {
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	return Key{Season: season, Week: week, Low: teamA, High: teamB}
}

// KeySet is the set of keys already present in a store.
type KeySet map[Key]struct{}

// KeysOf collects the keys of every record with a usable season.
func KeysOf(records []GameRecord) KeySet {
	set := make(KeySet, len(records))
	for _, r := range records {
		if k, ok := r.Key(); ok {
			set.Add(k)
		}
	}
	return set
}

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Add inserts k.
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// Clone returns an independent copy.
func (s KeySet) Clone() KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
