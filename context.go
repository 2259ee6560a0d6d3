package xfile

import (
	"github.com/ffparse/xfile/internal/log"
)

// Context carries everything a decoder needs beyond the bytes of its own
// raw struct: the stream cursor, endianness-derived block table, the
// script-string table, and a logger. It is threaded explicitly through
// every decode call rather than held in package-level mutable state (see
// SPEC_FULL.md "Shared-context plumbing" / DESIGN NOTES "Global mutable
// state").
type Context struct {
	Stream     *Stream
	Platform   Platform
	BlockSizes [numBlocks]uint32
	Strings    []string
	Log        *log.Helper

	savedStrings [][]string
}

// NewContext constructs a Context over an already-inflated payload.
func NewContext(stream *Stream, platform Platform, blockSizes [numBlocks]uint32, logger *log.Helper) *Context {
	if logger == nil {
		logger = log.NewHelper(log.NewNopLogger())
	}
	return &Context{Stream: stream, Platform: platform, BlockSizes: blockSizes, Log: logger}
}

// ResolveString maps a 16-bit script-string index to its interned text.
// Index 0 is the empty string by convention (the table's first entry);
// any index at or past the table's length, index 0 of an empty table
// included, is a hard failure (§8 P7).
func (c *Context) ResolveString(idx uint16) (string, error) {
	if int(idx) >= len(c.Strings) {
		return "", newErr(KindBrokenInvariant, c.Stream.Pos(), "script-string index %d out of range (table has %d entries)", idx, len(c.Strings))
	}
	return c.Strings[idx], nil
}

// PushStrings scopedly swaps in a new string table, used when decoding an
// asset that embeds its own nested sub-file of assets (e.g. Ddl). The
// previous table is restored by PopStrings.
func (c *Context) PushStrings(next []string) {
	c.savedStrings = append(c.savedStrings, c.Strings)
	c.Strings = next
}

// PopStrings restores the string table saved by the matching PushStrings.
func (c *Context) PopStrings() error {
	if len(c.savedStrings) == 0 {
		return newErr(KindBrokenInvariant, c.Stream.Pos(), "PopStrings called without a matching PushStrings")
	}
	n := len(c.savedStrings) - 1
	c.Strings = c.savedStrings[n]
	c.savedStrings = c.savedStrings[:n]
	return nil
}
