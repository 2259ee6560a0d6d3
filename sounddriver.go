package xfile

// SndDriverGlobals is the per-level mix/bus configuration consumed by the
// sound driver at load time: master volumes per category and the default
// reverb preset name.
type SndDriverGlobals struct {
	Name            string
	MasterVolumes   [4]float32 // music, sfx, voice, ambient
	DefaultReverb   string
}

func decodeSndDriverGlobalsAsset(ctx *Context) (XAsset, error) {
	s := ctx.Stream
	nameRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	var volumes [4]float32
	for i := range volumes {
		v, err := s.ReadF32()
		if err != nil {
			return XAsset{}, err
		}
		volumes[i] = v
	}
	reverbRaw, err := s.ReadU32()
	if err != nil {
		return XAsset{}, err
	}
	reverb, err := ReadStringPtr(ctx, reverbRaw)
	if err != nil {
		return XAsset{}, err
	}
	name, err := ReadStringPtr(ctx, nameRaw)
	if err != nil {
		return XAsset{}, err
	}
	sdg := &SndDriverGlobals{Name: name, MasterVolumes: volumes, DefaultReverb: reverb}
	return XAsset{Type: AssetSndDriverGlobals, Name: sdg.Name, SndDriverGlobals: sdg}, nil
}
