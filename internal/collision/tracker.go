// Package collision tracks channel names by lookup key.
package collision

// Tracker tracks channel names and detects key collisions while a channel
// list is built. It keeps the first name seen for each key and the ordered
// list of every name tracked.
type Tracker struct {
	names        map[uint64]string // key -> first name
	namesList    []string          // tracking order
	duplicates   []string          // names tracked more than once, in order
	hasCollision bool
}

// NewTracker creates a tracker sized for capacity names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		names:     make(map[uint64]string, capacity),
		namesList: make([]string, 0, capacity),
	}
}

// Track records name under key.
//
// Different names sharing a key set the collision flag. The same name tracked
// twice is recorded as a duplicate. Neither is an error: channel names are not
// required to be unique.
//
// Returns:
//   - bool: true if name was already tracked
func (t *Tracker) Track(name string, key uint64) bool {
	t.namesList = append(t.namesList, name)

	existing, ok := t.names[key]
	if !ok {
		t.names[key] = name
		return false
	}

	if existing != name {
		t.hasCollision = true
		// a later name may still repeat this one
		for _, n := range t.namesList[:len(t.namesList)-1] {
			if n == name {
				t.duplicates = append(t.duplicates, name)
				return true
			}
		}

		return false
	}

	t.duplicates = append(t.duplicates, name)

	return true
}

// HasCollision returns true if two different names shared a key.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in tracking order.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Duplicates returns every name tracked more than once, once per repeat.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.namesList)
}

// Reset clears all tracked names and collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	t.namesList = t.namesList[:0]
	t.duplicates = t.duplicates[:0]
	t.hasCollision = false
}
