package sbe

import (
	"errors"
	"fmt"
)

// PriceLevel is one fixed 17-byte record of the MarketData levels group.
type PriceLevel struct {
	Price int64
	Size  int64
	Side  Side
}

// GroupHeader prefixes a repeating group.
type GroupHeader struct {
	BlockLength uint16
	NumInGroup  uint16
}

// EncodeGroupHeader writes the 4-byte group header at off.
func EncodeGroupHeader(b []byte, off int, g GroupHeader) (int, error) {
	if err := checkSpan(b, off, GroupHeaderLength); err != nil {
		return off, err
	}
	off, _ = PutUint16(b, off, g.BlockLength)
	off, _ = PutUint16(b, off, g.NumInGroup)
	return off, nil
}

// DecodeGroupHeader reads the 4-byte group header at off.
func DecodeGroupHeader(b []byte, off int) (GroupHeader, int, error) {
	if err := checkSpan(b, off, GroupHeaderLength); err != nil {
		return GroupHeader{}, off, err
	}
	var g GroupHeader
	g.BlockLength, off, _ = Uint16(b, off)
	g.NumInGroup, off, _ = Uint16(b, off)
	return g, off, nil
}

func checkLevels(levels []PriceLevel) error {
	if len(levels) > MaxLevels {
		return fieldErr(TypeMarketData, "levels",
			fmt.Errorf("%w: %d levels, max %d", ErrOversizedField, len(levels), MaxLevels))
	}
	for i, l := range levels {
		if !l.Side.Valid() {
			return fieldErr(TypeMarketData, fmt.Sprintf("levels[%d].side", i),
				fmt.Errorf("%w: side 0x%02x", ErrMalformedEnum, byte(l.Side)))
		}
	}
	return nil
}

// putLevels writes the group header and every level in slice order.
func putLevels(b []byte, off int, levels []PriceLevel) (int, error) {
	if err := checkLevels(levels); err != nil {
		return off, err
	}
	size := GroupHeaderLength + len(levels)*PriceLevelLength
	if err := checkSpan(b, off, size); err != nil {
		return off, fieldErr(TypeMarketData, "levels", err)
	}
	off, _ = EncodeGroupHeader(b, off, GroupHeader{
		BlockLength: PriceLevelLength,
		NumInGroup:  uint16(len(levels)),
	})
	for _, l := range levels {
		_, _ = PutInt64(b, off+levelPriceOff, l.Price)
		_, _ = PutInt64(b, off+levelSizeOff, l.Size)
		_, _ = PutByte(b, off+levelSideOff, byte(l.Side))
		off += PriceLevelLength
	}
	return off, nil
}

// getLevels decodes the group at off. The entry width must be exactly
// PriceLevelLength; unknown trailing entry bytes are not skipped.
func getLevels(b []byte, off int) ([]PriceLevel, int, error) {
	g, next, err := DecodeGroupHeader(b, off)
	if err != nil {
		return nil, off, fieldErr(TypeMarketData, "levels", err)
	}
	if g.BlockLength != PriceLevelLength {
		return nil, off, fieldErr(TypeMarketData, "levels",
			fmt.Errorf("%w: level block length %d, want %d", ErrUnknownSchema, g.BlockLength, PriceLevelLength))
	}
	n := int(g.NumInGroup)
	if err := checkSpan(b, next, n*PriceLevelLength); err != nil {
		return nil, off, fieldErr(TypeMarketData, "levels", err)
	}
	levels := make([]PriceLevel, n)
	for i := range levels {
		r := fieldReader{b: b, base: next, msg: TypeMarketData}
		levels[i] = PriceLevel{
			Price: r.int64("price", levelPriceOff),
			Size:  r.int64("size", levelSizeOff),
			Side:  r.side("side", levelSideOff),
		}
		if r.err != nil {
			var fe *FieldError
			if errors.As(r.err, &fe) {
				fe.Field = fmt.Sprintf("levels[%d].%s", i, fe.Field)
			}
			return nil, off, r.err
		}
		next += PriceLevelLength
	}
	return levels, next, nil
}
