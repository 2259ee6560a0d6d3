package xfile

// Fixed-size vector/matrix aliases shared across asset kinds, grounded on
// original_source's common.rs type aliases.
type (
	Vec2 [2]float32
	Vec3 [3]float32
	Vec4 [4]float32
	Mat3 [3]Vec3
	Mat4 [4]Vec4
)

func readVec2(s *Stream) (Vec2, error) {
	var v Vec2
	for i := range v {
		f, err := s.ReadF32()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func readVec3(s *Stream) (Vec3, error) {
	var v Vec3
	for i := range v {
		f, err := s.ReadF32()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func readVec4(s *Stream) (Vec4, error) {
	var v Vec4
	for i := range v {
		f, err := s.ReadF32()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}
