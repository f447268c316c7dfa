package sbe

import (
	"encoding/binary"
	"errors"
	"testing"
)

func sampleTrade() Trade {
	return Trade{
		TradeID:   67890,
		OrderID:   12345,
		Symbol:    "AAPL",
		Side:      Sell,
		Quantity:  500,
		Price:     14950,
		Timestamp: testTimestamp,
		Venue:     "NASDAQ",
	}
}

func TestTrade_RoundTrip(t *testing.T) {
	tr := sampleTrade()
	b, err := EncodeTrade(tr)
	if err != nil {
		t.Fatalf("EncodeTrade: %v", err)
	}
	if want := 8 + 49 + 4 + 6; len(b) != want {
		t.Errorf("len = %d, want %d", len(b), want)
	}

	le := binary.LittleEndian
	body := b[HeaderLength:]
	if got := le.Uint16(b[0:]); got != TradeBlockLength {
		t.Errorf("blockLength = %d", got)
	}
	if got := int64(le.Uint64(body[8:])); got != 12345 {
		t.Errorf("orderId at 8 = %d", got)
	}
	if body[24] != 'S' {
		t.Errorf("side at 24 = %#x", body[24])
	}
	if got := int64(le.Uint64(body[41:])); got != testTimestamp {
		t.Errorf("timestamp at 41 = %d", got)
	}
	if got := string(body[49+4:]); got != "NASDAQ" {
		t.Errorf("venue = %q", got)
	}

	got, err := DecodeTrade(b)
	if err != nil {
		t.Fatalf("DecodeTrade: %v", err)
	}
	if got != tr {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, tr)
	}
}

func TestTrade_EmptyVenue(t *testing.T) {
	tr := sampleTrade()
	tr.Venue = ""
	b, err := EncodeTrade(tr)
	if err != nil {
		t.Fatalf("EncodeTrade: %v", err)
	}
	if len(b) != 8+49+4 {
		t.Errorf("len = %d", len(b))
	}
	got, err := DecodeTrade(b)
	if err != nil {
		t.Fatalf("DecodeTrade: %v", err)
	}
	if got != tr {
		t.Errorf("got %+v", got)
	}
}

func TestTrade_Errors(t *testing.T) {
	tr := sampleTrade()
	tr.Symbol = "NINECHARS"
	if _, err := EncodeTrade(tr); !errors.Is(err, ErrOversizedField) {
		t.Errorf("oversized symbol: err = %v", err)
	}

	b, err := EncodeTrade(sampleTrade())
	if err != nil {
		t.Fatalf("EncodeTrade: %v", err)
	}
	b[HeaderLength+tradeSideOff] = 0
	if _, err := DecodeTrade(b); !errors.Is(err, ErrMalformedEnum) {
		t.Errorf("zero side byte: err = %v", err)
	}

	order, _ := EncodeOrder(sampleOrder())
	if _, err := DecodeTrade(order); !errors.Is(err, ErrUnknownSchema) {
		t.Errorf("order frame as trade: err = %v", err)
	}
}
