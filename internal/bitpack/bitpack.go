package bitpack

const (
	flagBits  = 2
	priceBits = 32
	yearBits  = 16

	priceShift = flagBits
	yearShift  = priceShift + priceBits

	flagMask  = 1<<flagBits - 1
	priceMask = 1<<priceBits - 1
	yearMask  = 1<<yearBits - 1

	// ReservedShift is the first reserved bit.
	ReservedShift = yearShift + yearBits
)

// Word is a packed metadata word.
type Word uint64

// Meta is the unpacked content of a Word.
type Meta struct {
	Price uint32
	Year  uint16
	Flag  uint8
}

// Pack encodes price, year and flag. Negative price and year are floored at
// zero before masking; wider values wrap.
func Pack(price, year, flag int64) Word {
	p := uint64(max(price, 0)) & priceMask
	y := uint64(max(year, 0)) & yearMask
	f := uint64(flag) & flagMask
	return Word(y<<yearShift | p<<priceShift | f)
}

// Unpack extracts the fields of w.
func Unpack(w Word) (price, year, flag int64) {
	price = int64(uint64(w) >> priceShift & priceMask)
	year = int64(uint64(w) >> yearShift & yearMask)
	flag = int64(uint64(w) & flagMask)
	return price, year, flag
}

// Meta returns the unpacked fields of w.
func (w Word) Meta() Meta {
	p, y, f := Unpack(w)
	return Meta{Price: uint32(p), Year: uint16(y), Flag: uint8(f)}
}

// Reserved returns the reserved high bits. Pack always leaves them zero.
func (w Word) Reserved() uint64 {
	return uint64(w) >> ReservedShift
}
