package xfile

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/lz4/v4"
)

// Cache file layout (all little-endian, independent of the FastFile's own
// platform endianness — this is this module's own side-channel format,
// not part of THE CORE's wire format): magic "XFC1", u64 source content
// hash, u32 uncompressed payload length, then LZ4-compressed payload.
var cacheMagic = [4]byte{'X', 'F', 'C', '1'}

// WriteCache persists the inflated payload backing d (valid only after a
// successful Parse) to a sibling .cache file, per §4.7. This is purely an
// optimization: it must not affect what a later deserialization produces.
func (d *Deserializer) WriteCache(path string) error {
	if d.ctx == nil {
		return newErr(KindNotInflated, -1, "WriteCache called before Parse")
	}
	payload := d.ctx.Stream.buf

	f, err := os.Create(path)
	if err != nil {
		return wrapErr(KindIO, -1, err, "create cache file %s", path)
	}
	defer f.Close()

	if _, err := f.Write(cacheMagic[:]); err != nil {
		return wrapErr(KindIO, -1, err, "write cache magic")
	}
	hash := xxhash.Sum64(d.raw)
	if err := binary.Write(f, binary.LittleEndian, hash); err != nil {
		return wrapErr(KindIO, -1, err, "write cache hash")
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(payload))); err != nil {
		return wrapErr(KindIO, -1, err, "write cache length")
	}

	w := lz4.NewWriter(f)
	if _, err := w.Write(payload); err != nil {
		return wrapErr(KindIO, -1, err, "compress cache payload")
	}
	return w.Close()
}

// OpenCached reads an inflated payload previously written by WriteCache,
// skipping the original source's zlib inflate step entirely. sourcePath is
// the original FastFile, used only to validate the cache is still fresh
// (its content hash must match); it is never read further than that.
func OpenCached(cachePath, sourcePath string, opts *Options) (*Deserializer, error) {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, wrapErr(KindIO, -1, err, "read source %s", sourcePath)
	}

	f, err := os.Open(cachePath)
	if err != nil {
		return nil, wrapErr(KindIO, -1, err, "open cache %s", cachePath)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil || magic != cacheMagic {
		return nil, newErr(KindOther, -1, "cache file %s has bad magic", cachePath)
	}
	var storedHash uint64
	if err := binary.Read(f, binary.LittleEndian, &storedHash); err != nil {
		return nil, wrapErr(KindIO, -1, err, "read cache hash")
	}
	if storedHash != xxhash.Sum64(source) {
		return nil, newErr(KindOther, -1, "cache file %s is stale for %s", cachePath, sourcePath)
	}
	var length uint32
	if err := binary.Read(f, binary.LittleEndian, &length); err != nil {
		return nil, wrapErr(KindIO, -1, err, "read cache length")
	}

	payload := make([]byte, length)
	r := lz4.NewReader(f)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, wrapErr(KindIO, -1, err, "decompress cache payload")
	}

	d := &Deserializer{opts: opts}
	d.raw = source
	d.inflated = true

	platform := opts.platform()
	order, err := platform.ByteOrder()
	if err != nil {
		return nil, err
	}
	stream := NewStream(payload, order)
	xf, err := ReadXFile(stream)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(stream, platform, xf.BlockSize, opts.logger())
	if err := d.finishParse(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
