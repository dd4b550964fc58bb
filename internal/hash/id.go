// Package hash derives lookup keys for channel names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ChannelKey returns the lookup key of a channel name. Names are compared exactly,
// so "Beacon" and "beacon" are different channels.
func ChannelKey(name string) uint64 {
	return ID(name)
}
