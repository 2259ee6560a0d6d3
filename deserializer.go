// Package xfile deserializes Call of Duty-engine "FastFiles" (internally
// XFiles): compressed dumps of the engine's in-memory asset graph for a
// level or UI screen. It implements the pointer-fix-up binary object-graph
// reader described in SPEC_FULL.md; it does not interpret script/shader
// bytecode, create GPU resources, or re-serialize assets back to the
// FastFile format.
package xfile

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zlib"

	"github.com/ffparse/xfile/internal/log"
)

// Options configures a Deserializer, mirroring the teacher's Options
// struct (a flat set of behavior toggles passed once at construction).
type Options struct {
	// Platform selects the endianness and layout variant to parse under.
	// Defaults to PlatformPC.
	Platform Platform
	// MaxAssets makes Parse fail, before any asset is decoded, when the
	// AssetList's asset_count exceeds it, guarding against a corrupt
	// asset_count field driving an unbounded read loop. Zero means unlimited.
	MaxAssets uint32
	// Logger receives diagnostic output; nil installs a no-op logger.
	Logger log.Logger
	// Inflate overrides the default zlib-based decompressor. Left nil to
	// use the shipped klauspost/compress-backed default (§1: the inflate
	// layer is an external collaborator, not part of THE CORE).
	Inflate func(io.Reader) (io.ReadCloser, error)
	// ContinueOnError makes All log and skip a malformed asset instead of
	// aborting the whole batch, mirroring the teacher's per-directory
	// recover() in ParseDataDirectories. It has no effect on Next, whose
	// streaming contract (§4.4: any decoder failure aborts the file) is
	// unconditional.
	ContinueOnError bool
}

func (o *Options) logger() *log.Helper {
	if o == nil || o.Logger == nil {
		return log.NewHelper(log.NewNopLogger())
	}
	return log.NewHelper(o.Logger)
}

func (o *Options) platform() Platform {
	if o == nil {
		return PlatformPC
	}
	return o.Platform
}

func (o *Options) inflate(r io.Reader) (io.ReadCloser, error) {
	if o != nil && o.Inflate != nil {
		return o.Inflate(r)
	}
	return zlib.NewReader(r)
}

// Deserializer drives one FastFile's deserialization: it owns the raw file
// bytes, the inflated payload, and the shared Context threaded through
// every decoder call. It is not safe for concurrent use (§5).
type Deserializer struct {
	opts    *Options
	raw     []byte
	mapping *mmap.MMap

	ctx     *Context
	al      xAssetList
	queue   []assetDescriptor
	pos     int
	inflated bool
}

// New opens path, memory-mapping it the way the teacher's File.New does,
// and returns a Deserializer ready for Parse.
func New(path string, opts *Options) (*Deserializer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIO, -1, err, "open %s", path)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, wrapErr(KindIO, -1, err, "mmap %s", path)
	}
	d := &Deserializer{opts: opts, raw: []byte(m), mapping: &m}
	return d, nil
}

// NewBytes builds a Deserializer directly over an in-memory FastFile,
// without mmap (used by tests and the fuzz harness).
func NewBytes(data []byte, opts *Options) (*Deserializer, error) {
	return &Deserializer{opts: opts, raw: data}, nil
}

// Close releases the underlying mapping, if any.
func (d *Deserializer) Close() error {
	if d.mapping != nil {
		err := d.mapping.Unmap()
		d.mapping = nil
		return err
	}
	return nil
}

// Parse runs the full asset-list driver pipeline from §4.6: header gate,
// inflate, XFile control block, AssetList descriptor resolution, and
// string-table population. After Parse returns successfully, Next/All may
// be called to pull decoded assets.
func (d *Deserializer) Parse() error {
	platform := d.opts.platform()

	hdr, order, err := ReadHeader(d.raw, platform)
	if err != nil {
		return err
	}

	inflated, err := d.opts.inflate(newByteReader(d.raw[12:]))
	if err != nil {
		return wrapErr(KindInflate, 12, err, "inflate payload")
	}
	defer inflated.Close()
	payload, err := io.ReadAll(inflated)
	if err != nil {
		return wrapErr(KindInflate, 12, err, "read inflated payload")
	}
	d.inflated = true

	_ = hdr // version/compression byte already validated by ReadHeader

	stream := NewStream(payload, order)
	xf, err := ReadXFile(stream)
	if err != nil {
		return err
	}

	ctx := NewContext(stream, platform, xf.BlockSize, d.opts.logger())
	return d.finishParse(ctx)
}

// finishParse reads the AssetList, interns the string table, and resolves
// the asset-descriptor queue — the portion of §4.6 shared between Parse
// (fresh inflate) and OpenCached (cached payload).
func (d *Deserializer) finishParse(ctx *Context) error {
	al, err := readXAssetList(ctx.Stream)
	if err != nil {
		return err
	}
	if d.opts.MaxAssets != 0 && al.AssetCount > d.opts.MaxAssets {
		return newErr(KindBrokenInvariant, ctx.Stream.Pos(), "asset_count %d exceeds configured MaxAssets %d", al.AssetCount, d.opts.MaxAssets)
	}

	strs, err := readScriptStringTable(ctx, al.StringCount, al.StringsRaw)
	if err != nil {
		return err
	}
	ctx.Strings = strs

	queue, err := WithPointer(ctx, al.AssetsRaw, func(ctx *Context) ([]assetDescriptor, error) {
		return ReadFlexArrayU32(ctx, al.AssetCount, readAssetDescriptor)
	})
	if err != nil {
		return err
	}

	d.ctx = ctx
	d.al = al
	d.queue = queue
	return nil
}

// Next decodes and returns the next queued asset, or (XAsset{}, false, nil)
// once the queue is drained. Any decoder failure aborts the file per §4.4:
// the caller sees the error and must not call Next again. A decoder panic
// (an out-of-range slice index or similar programmer error, not an
// expected malformed-input condition) is recovered here and surfaced as a
// KindOther error instead of crashing the caller, mirroring the teacher's
// ParseDataDirectories recover().
func (d *Deserializer) Next() (asset XAsset, ok bool, err error) {
	if d.ctx == nil {
		return XAsset{}, false, newErr(KindNotInflated, -1, "Next called before Parse")
	}
	if d.pos >= len(d.queue) {
		return XAsset{}, false, nil
	}
	desc := d.queue[d.pos]
	d.pos++

	defer func() {
		if r := recover(); r != nil {
			err = newErr(KindOther, d.ctx.Stream.Pos(), "asset %d/%d (%s): panic: %v", d.pos, len(d.queue), desc.Type, r)
			d.ctx.Log.Errorf("%v", err)
			asset, ok = XAsset{}, false
		}
	}()

	asset, err = WithPointer(d.ctx, desc.DataRaw, func(ctx *Context) (XAsset, error) {
		a, err := decodeAsset(ctx, desc.Type)
		if err != nil {
			return XAsset{}, err
		}
		a.Type = desc.Type
		return a, nil
	})
	if err != nil {
		d.ctx.Log.Errorf("asset %d/%d (%s): %v", d.pos, len(d.queue), desc.Type, err)
		return XAsset{}, false, err
	}
	return asset, true, nil
}

// All drains the remaining queue into a slice (the batch API, as opposed
// to Next's streaming API). With the default Options (ContinueOnError
// false), it stops and returns the first error, with no partial asset
// list returned (§7 "no partial asset list is returned on failure"). With
// ContinueOnError set, a malformed asset is logged and skipped instead,
// so one bad entry doesn't drop every asset queued behind it.
func (d *Deserializer) All() ([]XAsset, error) {
	continueOnError := d.opts != nil && d.opts.ContinueOnError
	var out []XAsset
	for {
		a, ok, err := d.Next()
		if err != nil {
			if continueOnError {
				continue
			}
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, a)
	}
}

// byteReader adapts a []byte to io.Reader without copying.
type byteReader struct {
	b   []byte
	pos int
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}
