package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestChannelKey(t *testing.T) {
	assert.Equal(t, ID("Beacon"), ChannelKey("Beacon"))
	assert.Equal(t, ChannelKey("Ground Speed"), ChannelKey("Ground Speed"))
	assert.NotEqual(t, ChannelKey("Beacon"), ChannelKey("beacon"))
}
