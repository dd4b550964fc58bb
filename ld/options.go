package ld

import (
	"fmt"
	"io"
	"log"

	"github.com/arloliu/ldfile/internal/options"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type readerConfig struct {
	logger       *log.Logger
	channelLimit int
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithReaderLogger sets the logger for traversal diagnostics. A nil logger
// discards output.
func WithReaderLogger(logger *log.Logger) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		if logger == nil {
			logger = discardLogger()
		}
		c.logger = logger
	})
}

// WithChannelLimit overrides the maximum number of channel blocks the reader
// will visit. Zero restores the default, the header's declared channel count
// or, when that is zero, the number of blocks that fit in the stream.
func WithChannelLimit(limit int) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if limit < 0 {
			return fmt.Errorf("invalid channel limit: %d", limit)
		}
		c.channelLimit = limit

		return nil
	})
}

type writerConfig struct {
	logger *log.Logger
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithWriterLogger sets the logger for layout corrections. A nil logger
// discards output.
func WithWriterLogger(logger *log.Logger) WriterOption {
	return options.NoError(func(c *writerConfig) {
		if logger == nil {
			logger = discardLogger()
		}
		c.logger = logger
	})
}
