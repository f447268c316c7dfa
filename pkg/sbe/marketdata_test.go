package sbe

import (
	"encoding/binary"
	"errors"
	"testing"
)

func sampleMarketData() MarketData {
	return MarketData{
		Symbol:    "AAPL",
		Timestamp: testTimestamp,
		BidPrice:  14950,
		BidSize:   2000,
		AskPrice:  15050,
		AskSize:   1500,
		LastPrice: 15000,
		LastSize:  500,
		Levels: []PriceLevel{
			{Price: 14900, Size: 1000, Side: Buy},
			{Price: 14950, Size: 2000, Side: Buy},
			{Price: 15050, Size: 1500, Side: Sell},
			{Price: 15100, Size: 800, Side: Sell},
		},
	}
}

func TestMarketData_RoundTrip(t *testing.T) {
	md := sampleMarketData()
	b, err := EncodeMarketData(md)
	if err != nil {
		t.Fatalf("EncodeMarketData: %v", err)
	}
	if len(b) != 144 {
		t.Fatalf("len = %d, want 144", len(b))
	}

	got, err := DecodeMarketData(b)
	if err != nil {
		t.Fatalf("DecodeMarketData: %v", err)
	}
	if !got.Equal(md) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, md)
	}
	if len(got.Levels) != 4 {
		t.Fatalf("levels = %d, want 4", len(got.Levels))
	}
	for i := range md.Levels {
		if got.Levels[i] != md.Levels[i] {
			t.Errorf("level %d = %+v, want %+v", i, got.Levels[i], md.Levels[i])
		}
	}
}

func TestMarketData_GroupLayout(t *testing.T) {
	b, err := EncodeMarketData(sampleMarketData())
	if err != nil {
		t.Fatalf("EncodeMarketData: %v", err)
	}
	le := binary.LittleEndian
	group := b[HeaderLength+64:]
	if got := le.Uint16(group[0:]); got != PriceLevelLength {
		t.Errorf("group blockLength = %d, want 17", got)
	}
	if got := le.Uint16(group[2:]); got != 4 {
		t.Errorf("numInGroup = %d, want 4", got)
	}
	third := group[4+2*17:]
	if got := int64(le.Uint64(third[0:])); got != 15050 {
		t.Errorf("level[2].price = %d", got)
	}
	if got := int64(le.Uint64(third[8:])); got != 1500 {
		t.Errorf("level[2].size = %d", got)
	}
	if third[16] != 'S' {
		t.Errorf("level[2].side = %#x", third[16])
	}
}

func TestMarketData_OrderIsPreserved(t *testing.T) {
	md := sampleMarketData()
	// deliberately unsorted
	md.Levels = []PriceLevel{
		{Price: 3, Size: 1, Side: Sell},
		{Price: 1, Size: 2, Side: Buy},
		{Price: 2, Size: 3, Side: Sell},
	}
	b, err := EncodeMarketData(md)
	if err != nil {
		t.Fatalf("EncodeMarketData: %v", err)
	}
	got, err := DecodeMarketData(b)
	if err != nil {
		t.Fatalf("DecodeMarketData: %v", err)
	}
	if !got.Equal(md) {
		t.Errorf("got %+v", got.Levels)
	}
}

func TestMarketData_NoLevels(t *testing.T) {
	md := sampleMarketData()
	md.Levels = nil
	b, err := EncodeMarketData(md)
	if err != nil {
		t.Fatalf("EncodeMarketData: %v", err)
	}
	if len(b) != 8+64+4 {
		t.Errorf("len = %d", len(b))
	}
	got, err := DecodeMarketData(b)
	if err != nil {
		t.Fatalf("DecodeMarketData: %v", err)
	}
	if !got.Equal(md) || len(got.Levels) != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestMarketData_MaxLevels(t *testing.T) {
	md := sampleMarketData()
	md.Levels = make([]PriceLevel, MaxLevels)
	for i := range md.Levels {
		md.Levels[i] = PriceLevel{Price: int64(i), Size: 1, Side: Buy}
	}
	b, err := EncodeMarketData(md)
	if err != nil {
		t.Fatalf("EncodeMarketData with %d levels: %v", MaxLevels, err)
	}
	if len(b) != md.EncodedLength() {
		t.Errorf("len = %d, want %d", len(b), md.EncodedLength())
	}
	got, err := DecodeMarketData(b)
	if err != nil {
		t.Fatalf("DecodeMarketData: %v", err)
	}
	if len(got.Levels) != MaxLevels || got.Levels[MaxLevels-1].Price != MaxLevels-1 {
		t.Errorf("decoded %d levels", len(got.Levels))
	}

	md.Levels = append(md.Levels, PriceLevel{Side: Sell})
	if _, err := EncodeMarketData(md); !errors.Is(err, ErrOversizedField) {
		t.Errorf("%d levels: err = %v, want ErrOversizedField", len(md.Levels), err)
	}
}

func TestMarketData_DecodeErrors(t *testing.T) {
	good, err := EncodeMarketData(sampleMarketData())
	if err != nil {
		t.Fatalf("EncodeMarketData: %v", err)
	}
	group := HeaderLength + 64
	le := binary.LittleEndian
	mutate := func(f func(b []byte)) []byte {
		b := append([]byte(nil), good...)
		f(b)
		return b
	}

	tests := []struct {
		name    string
		buf     []byte
		wantErr error
	}{
		{"entry width 18", mutate(func(b []byte) { le.PutUint16(b[group:], 18) }), ErrUnknownSchema},
		{"entry width 16", mutate(func(b []byte) { le.PutUint16(b[group:], 16) }), ErrUnknownSchema},
		{"count past end", mutate(func(b []byte) { le.PutUint16(b[group+2:], 5) }), ErrOutOfBounds},
		{"last entry cut", good[:len(good)-1], ErrOutOfBounds},
		{"no group header", good[:group+3], ErrOutOfBounds},
		{"bad level side", mutate(func(b []byte) { b[group+4+17+16] = 'Q' }), ErrMalformedEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMarketData(tt.buf)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got.Levels != nil || got.Symbol != "" {
				t.Errorf("partial value returned: %+v", got)
			}
		})
	}
}

func TestMarketData_BadLevelSideNamesIndex(t *testing.T) {
	md := sampleMarketData()
	md.Levels[2].Side = 0
	_, err := EncodeMarketData(md)
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FieldError", err)
	}
	if fe.Field != "levels[2].side" {
		t.Errorf("field = %q", fe.Field)
	}

	b, _ := EncodeMarketData(sampleMarketData())
	b[HeaderLength+64+4+17+16] = 'Q'
	_, err = DecodeMarketData(b)
	if !errors.As(err, &fe) || fe.Field != "levels[1].side" {
		t.Errorf("decode err = %v", err)
	}
}
