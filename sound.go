package xfile

// SoundFileKind selects between the two SoundFile union arms.
type SoundFileKind uint8

const (
	SoundFileLoaded SoundFileKind = iota
	SoundFileStreamed
	soundFileKindMax
)

// SoundFormat is the encoding of a loaded sound's inline payload.
type SoundFormat uint8

const (
	SoundFormatPCMS16 SoundFormat = iota
	SoundFormatADPCM
	SoundFormatMP3
	soundFormatMax
)

const (
	sndChannelFlagLooped = 1 << 0
	sndChannelFlagMono   = 1 << 1
	sndChannelFlagsAll   = sndChannelFlagLooped | sndChannelFlagMono
)

// LoadedSound is the inline-payload arm of SoundFile.
type LoadedSound struct {
	Format    SoundFormat
	Channels  uint8
	SampleHz  uint32
	SeekTable []uint32
	Data      []byte
}

// StreamedSound is the filename-reference arm of SoundFile.
type StreamedSound struct {
	Filename string
	Primed   []byte // optional primed prefix, nil if absent
}

// SoundFile is a tagged union: LoadedSound (inline PCM/ADPCM/MP3 payload)
// or StreamedSound (filename + optional primed prefix).
type SoundFile struct {
	Kind     SoundFileKind
	Loaded   *LoadedSound
	Streamed *StreamedSound
}

// SndAlias is one alias entry: a name plus a sentinel pointer to the sound
// file it selects.
type SndAlias struct {
	Name string
	File *SoundFile
}

// SndAliasList groups aliases that round-robin under one logical name.
type SndAliasList struct {
	Name    string
	Aliases []SndAlias
}

// SndBank is the top-level sound-bank asset: an array of alias lists.
type SndBank struct {
	Name       string
	AliasLists []SndAliasList
}

func decodeSoundAsset(ctx *Context) (XAsset, error) {
	b, err := decodeSndBank(ctx)
	if err != nil {
		return XAsset{}, err
	}
	return XAsset{Type: AssetSound, Name: b.Name, Sound: b}, nil
}

func decodeSndBank(ctx *Context) (*SndBank, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	listsPtrRaw, err := s.ReadU32()
	if err != nil {
		return nil, err
	}

	lists, err := ReadArrayCountFirstU32(ctx, count, listsPtrRaw, decodeSndAliasList)
	if err != nil {
		return nil, err
	}

	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return nil, err
	}
	return &SndBank{Name: name, AliasLists: lists}, nil
}

func decodeSndAliasList(ctx *Context) (SndAliasList, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return SndAliasList{}, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return SndAliasList{}, err
	}
	aliasesPtrRaw, err := s.ReadU32()
	if err != nil {
		return SndAliasList{}, err
	}
	aliases, err := ReadArrayCountFirstU32(ctx, count, aliasesPtrRaw, decodeSndAlias)
	if err != nil {
		return SndAliasList{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return SndAliasList{}, err
	}
	return SndAliasList{Name: name, Aliases: aliases}, nil
}

func decodeSndAlias(ctx *Context) (SndAlias, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return SndAlias{}, err
	}
	filePtrRaw, err := s.ReadU32()
	if err != nil {
		return SndAlias{}, err
	}
	file, err := WithPointer(ctx, filePtrRaw, decodeSoundFile)
	if err != nil {
		return SndAlias{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return SndAlias{}, err
	}
	return SndAlias{Name: name, File: file}, nil
}

func decodeSoundFile(ctx *Context) (*SoundFile, error) {
	s := ctx.Stream
	kindRaw, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if SoundFileKind(kindRaw) >= soundFileKindMax {
		return nil, newErr(KindBadFromPrimitive, s.Pos(), "soundfile kind %d", kindRaw)
	}
	kind := SoundFileKind(kindRaw)

	switch kind {
	case SoundFileLoaded:
		formatRaw, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		if SoundFormat(formatRaw) >= soundFormatMax {
			return nil, newErr(KindBadFromPrimitive, s.Pos(), "sound format %d", formatRaw)
		}
		channelFlags, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		if uint32(channelFlags)&^sndChannelFlagsAll != 0 {
			return nil, newErr(KindBadBitflags, s.Pos(), "sound channel flags 0x%x", channelFlags)
		}
		sampleHz, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		dataSize, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		seekCount, err := s.ReadU16()
		if err != nil {
			return nil, err
		}
		seekTable, err := ReadFlexArrayU16(ctx, seekCount, func(ctx *Context) (uint32, error) {
			return ctx.Stream.ReadU32()
		})
		if err != nil {
			return nil, err
		}
		data, err := s.ReadExact(int(dataSize))
		if err != nil {
			return nil, err
		}
		return &SoundFile{Kind: kind, Loaded: &LoadedSound{
			Format: SoundFormat(formatRaw), Channels: channelFlags, SampleHz: sampleHz,
			SeekTable: seekTable, Data: append([]byte(nil), data...),
		}}, nil

	case SoundFileStreamed:
		filenameRaw, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		primedLen, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		primedPtrRaw, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		primed, err := WithPointer(ctx, primedPtrRaw, func(ctx *Context) ([]byte, error) {
			b, err := ctx.Stream.ReadExact(int(primedLen))
			return append([]byte(nil), b...), err
		})
		if err != nil {
			return nil, err
		}
		filename, err := ReadStringPtr(ctx, filenameRaw)
		if err != nil {
			return nil, err
		}
		return &SoundFile{Kind: kind, Streamed: &StreamedSound{Filename: filename, Primed: primed}}, nil

	default:
		return nil, newErr(KindBadFromPrimitive, s.Pos(), "soundfile kind %d", kindRaw)
	}
}
