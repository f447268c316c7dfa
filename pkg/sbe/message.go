package sbe

import "fmt"

// Message type names, used by the text layer, the CLI and storage keys.
const (
	TypeOrder      = "order"
	TypeTrade      = "trade"
	TypeMarketData = "marketdata"
)

// Message is one of Order, Trade or MarketData. The set is closed.
type Message interface {
	TemplateID() uint16
	BlockLength() uint16
	// EncodedLength is the exact frame size: header, fixed block and tail.
	EncodedLength() int
	// Validate runs every encode-time check without writing anything.
	Validate() error
	Meta() Meta

	encodeBody(b []byte, body int) (int, error)
}

// Meta identifies a message without exposing its concrete type.
type Meta struct {
	Type       string `json:"type"`
	TemplateID uint16 `json:"templateId"`
	Symbol     string `json:"symbol"`
	Timestamp  int64  `json:"timestamp"`
}

// TypeName maps a template id to its message type name.
func TypeName(templateID uint16) (string, bool) {
	switch templateID {
	case TemplateOrder:
		return TypeOrder, true
	case TemplateTrade:
		return TypeTrade, true
	case TemplateMarketData:
		return TypeMarketData, true
	}
	return "", false
}

// TemplateFor maps a type name back to its template id.
func TemplateFor(name string) (uint16, bool) {
	switch name {
	case TypeOrder:
		return TemplateOrder, true
	case TypeTrade:
		return TemplateTrade, true
	case TypeMarketData:
		return TemplateMarketData, true
	}
	return 0, false
}

// Encode writes header, fixed block and tail into a fresh slice. The
// returned length comes from the write cursor, not from EncodedLength.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", ErrUnknownSchema)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	scratch := smallScratch
	if m.TemplateID() == TemplateMarketData {
		scratch = largeScratch
	}
	buf := make([]byte, max(scratch, m.EncodedLength()))

	body, err := EncodeHeader(buf, 0, headerFor(m))
	if err != nil {
		return nil, err
	}
	end, err := m.encodeBody(buf, body)
	if err != nil {
		return nil, err
	}
	return buf[:end:end], nil
}

// EncodedLength is the exact frame size of m without encoding it.
func EncodedLength(m Message) int {
	if m == nil {
		return 0
	}
	return m.EncodedLength()
}

// DecodeNext decodes the message at the front of b and reports how many
// bytes it used. Bytes after the message are left alone, so a stream of
// concatenated frames can be walked with repeated calls.
func DecodeNext(b []byte) (Message, int, error) {
	h, body, err := DecodeHeader(b, 0)
	if err != nil {
		return nil, 0, err
	}
	return decodeBody(b, body, h)
}

// DecodeAny reads the header and routes on its template id.
func DecodeAny(b []byte) (Message, error) {
	m, _, err := DecodeNext(b)
	return m, err
}

func decodeBody(b []byte, body int, h MessageHeader) (Message, int, error) {
	switch h.TemplateID {
	case TemplateOrder:
		return decodeOrder(b, body, h)
	case TemplateTrade:
		return decodeTrade(b, body, h)
	case TemplateMarketData:
		return decodeMarketData(b, body, h)
	}
	return nil, 0, fieldErr("header", "templateId", fmt.Errorf("%w: template id %d", ErrUnknownSchema, h.TemplateID))
}

// decodeAs is DecodeAny restricted to one template.
func decodeAs(b []byte, templateID uint16) (Message, error) {
	h, body, err := DecodeHeader(b, 0)
	if err != nil {
		return nil, err
	}
	if h.TemplateID != templateID {
		return nil, fieldErr("header", "templateId",
			fmt.Errorf("%w: template id %d, want %d", ErrUnknownSchema, h.TemplateID, templateID))
	}
	m, _, err := decodeBody(b, body, h)
	return m, err
}
