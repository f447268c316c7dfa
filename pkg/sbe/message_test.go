package sbe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestDecodeAny_Dispatch(t *testing.T) {
	msgs := []Message{sampleOrder(), sampleTrade(), sampleMarketData()}
	for _, m := range msgs {
		b, err := Encode(m)
		if err != nil {
			t.Fatalf("Encode %T: %v", m, err)
		}
		got, err := DecodeAny(b)
		if err != nil {
			t.Fatalf("DecodeAny %T: %v", m, err)
		}
		switch want := m.(type) {
		case Order:
			o, ok := got.(Order)
			if !ok || o != want {
				t.Errorf("order: got %#v", got)
			}
		case Trade:
			tr, ok := got.(Trade)
			if !ok || tr != want {
				t.Errorf("trade: got %#v", got)
			}
		case MarketData:
			md, ok := got.(MarketData)
			if !ok || !md.Equal(want) {
				t.Errorf("marketdata: got %#v", got)
			}
		}
	}
}

func TestDecodeAny_UnknownTemplate(t *testing.T) {
	b, _ := EncodeOrder(sampleOrder())
	binary.LittleEndian.PutUint16(b[2:], 99)

	_, err := DecodeAny(b)
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("err = %v, want ErrUnknownSchema", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "templateId" {
		t.Errorf("err = %#v", err)
	}
}

func TestDecodeAny_ShortBuffer(t *testing.T) {
	m, err := DecodeAny(make([]byte, 7))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if m != nil {
		t.Errorf("message = %#v, want nil", m)
	}
}

func TestDecodeAny_ForeignSchema(t *testing.T) {
	for _, pos := range []int{4, 6} {
		b, _ := EncodeTrade(sampleTrade())
		binary.LittleEndian.PutUint16(b[pos:], 2)
		if _, err := DecodeAny(b); !errors.Is(err, ErrUnknownSchema) {
			t.Errorf("header byte %d = 2: err = %v", pos, err)
		}
	}
}

func TestDecodeNext_Stream(t *testing.T) {
	var stream []byte
	msgs := []Message{sampleMarketData(), sampleOrder(), sampleTrade(), sampleOrder()}
	for _, m := range msgs {
		b, err := Encode(m)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		stream = append(stream, b...)
	}

	var got []Message
	for rest := stream; len(rest) > 0; {
		m, n, err := DecodeNext(rest)
		if err != nil {
			t.Fatalf("DecodeNext at %d: %v", len(stream)-len(rest), err)
		}
		if n != m.EncodedLength() {
			t.Errorf("consumed %d, want %d", n, m.EncodedLength())
		}
		got = append(got, m)
		rest = rest[n:]
	}
	if len(got) != len(msgs) {
		t.Fatalf("decoded %d messages, want %d", len(got), len(msgs))
	}
	for i := range msgs {
		if got[i].Meta() != msgs[i].Meta() {
			t.Errorf("message %d: %+v, want %+v", i, got[i].Meta(), msgs[i].Meta())
		}
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	b, _ := EncodeOrder(sampleOrder())
	padded := append(append([]byte(nil), b...), 0xde, 0xad)
	got, err := DecodeOrder(padded)
	if err != nil {
		t.Fatalf("DecodeOrder: %v", err)
	}
	if got != sampleOrder() {
		t.Errorf("got %+v", got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	for _, m := range []Message{sampleOrder(), sampleTrade(), sampleMarketData()} {
		a, err := Encode(m)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		b, _ := Encode(m)
		if !bytes.Equal(a, b) {
			t.Errorf("%T: two encodings differ", m)
		}
		if len(a) != m.EncodedLength() {
			t.Errorf("%T: len %d, EncodedLength %d", m, len(a), m.EncodedLength())
		}
		if cap(a) != len(a) {
			t.Errorf("%T: cap %d exposes scratch space", m, cap(a))
		}
	}
}

func TestEncode_HeaderFields(t *testing.T) {
	tests := []struct {
		m     Message
		block uint16
		tmpl  uint16
	}{
		{sampleOrder(), 42, 1},
		{sampleTrade(), 49, 2},
		{sampleMarketData(), 64, 3},
	}
	for _, tt := range tests {
		b, err := Encode(tt.m)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		h, next, err := DecodeHeader(b, 0)
		if err != nil {
			t.Fatalf("DecodeHeader: %v", err)
		}
		want := MessageHeader{BlockLength: tt.block, TemplateID: tt.tmpl, SchemaID: 1, Version: 1}
		if h != want || next != HeaderLength {
			t.Errorf("%T: header %+v next %d", tt.m, h, next)
		}
	}
}

func TestEncode_Nil(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Fatal("Encode(nil) returned no error")
	}
}

func TestTypeNames(t *testing.T) {
	for _, name := range []string{TypeOrder, TypeTrade, TypeMarketData} {
		id, ok := TemplateFor(name)
		if !ok {
			t.Fatalf("TemplateFor(%q) not found", name)
		}
		back, ok := TypeName(id)
		if !ok || back != name {
			t.Errorf("TypeName(%d) = %q", id, back)
		}
	}
	if _, ok := TypeName(0); ok {
		t.Error("TypeName(0) found")
	}
	if _, ok := TemplateFor("quote"); ok {
		t.Error(`TemplateFor("quote") found`)
	}
}

// BenchmarkEncodeOrder measures order encode throughput
func BenchmarkEncodeOrder(b *testing.B) {
	o := sampleOrder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeOrder(o); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeMarketData(b *testing.B) {
	buf, err := EncodeMarketData(sampleMarketData())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeMarketData(buf); err != nil {
			b.Fatal(err)
		}
	}
}
