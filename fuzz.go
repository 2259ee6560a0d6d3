package xfile

func Fuzz(data []byte) int {
	d, err := NewBytes(data, &Options{Platform: PlatformPC})
	if err != nil {
		return 0
	}
	if err := d.Parse(); err != nil {
		return 0
	}
	if _, err := d.All(); err != nil {
		return 0
	}
	return 1
}
