package floppy

// BlankImage is an in-memory Image used by tests and by cmd/diskutil for
// demonstration purposes. It plays the same "small in-memory backing
// buffer" role the core's memory.Cartridge plays for ROM data, but for
// floppy tracks instead of ROM banks.
type BlankImage struct {
	tracks   map[[2]int]*Track
	protect  bool
	loaded   bool
	ddLength int
	sdLength int
}

// NewBlankImage returns a loaded, writable image with every track blank.
func NewBlankImage() *BlankImage {
	return &BlankImage{
		tracks:   make(map[[2]int]*Track),
		loaded:   true,
		ddLength: DoubleDensityLength,
		sdLength: SingleDensityLength,
	}
}

// SetWriteProtected toggles the image's write-protect flag.
func (b *BlankImage) SetWriteProtected(v bool) { b.protect = v }

// TrackData implements Image.
func (b *BlankImage) TrackData(physicalTrack, side int) *Track {
	key := [2]int{physicalTrack, side}
	t, ok := b.tracks[key]
	if !ok {
		t = NewTrack(b.ddLength)
		b.tracks[key] = t
	}
	return t
}

// TrackLength implements Image.
func (b *BlankImage) TrackLength(doubleDensity bool) int {
	if doubleDensity {
		return b.ddLength
	}
	return b.sdLength
}

// Loaded implements Image.
func (b *BlankImage) Loaded() bool { return b.loaded }

// WriteProtected implements Image.
func (b *BlankImage) WriteProtected() bool { return b.protect }
