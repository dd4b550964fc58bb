package ld

import (
	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/internal/collision"
	"github.com/arloliu/ldfile/internal/hash"
	"github.com/arloliu/ldfile/section"
)

// ChannelList is the channel metadata list in traversal order.
//
// Name lookups go through an xxHash64 index. When several channels share a
// name, Find returns the first one in traversal order.
type ChannelList struct {
	channels []section.ChannelMetadata
	index    map[uint64]int
	tracker  *collision.Tracker
}

func newChannelList(capacity int) ChannelList {
	return ChannelList{
		channels: make([]section.ChannelMetadata, 0, capacity),
		index:    make(map[uint64]int, capacity),
		tracker:  collision.NewTracker(capacity),
	}
}

// NewChannelList builds a list from channels, preserving their order.
func NewChannelList(channels []section.ChannelMetadata) ChannelList {
	l := newChannelList(len(channels))
	for _, ch := range channels {
		l.add(ch)
	}

	return l
}

func (l *ChannelList) add(ch section.ChannelMetadata) {
	key := hash.ChannelKey(ch.Name)
	l.tracker.Track(ch.Name, key)
	if _, ok := l.index[key]; !ok {
		l.index[key] = len(l.channels)
	}
	l.channels = append(l.channels, ch)
}

// Len returns the number of channels.
func (l ChannelList) Len() int {
	return len(l.channels)
}

// At returns the i-th channel. It panics if i is out of range.
func (l ChannelList) At(i int) section.ChannelMetadata {
	return l.channels[i]
}

// All returns a copy of the channels in traversal order.
func (l ChannelList) All() []section.ChannelMetadata {
	out := make([]section.ChannelMetadata, len(l.channels))
	copy(out, l.channels)

	return out
}

// Find returns the first channel named name.
func (l ChannelList) Find(name string) (section.ChannelMetadata, bool) {
	if i, ok := l.index[hash.ChannelKey(name)]; ok && l.channels[i].Name == name {
		return l.channels[i], true
	}

	if l.tracker == nil || !l.tracker.HasCollision() {
		return section.ChannelMetadata{}, false
	}

	// key shared with an earlier, differently named channel
	for _, ch := range l.channels {
		if ch.Name == name {
			return ch, true
		}
	}

	return section.ChannelMetadata{}, false
}

// Duplicates returns the names that occur more than once, once per repeat.
func (l ChannelList) Duplicates() []string {
	if l.tracker == nil {
		return nil
	}

	return l.tracker.Duplicates()
}

// Beacon returns the first channel that qualifies as the lap marker channel.
func (l ChannelList) Beacon() (section.ChannelMetadata, bool) {
	return beacon.FindChannel(l.channels)
}
