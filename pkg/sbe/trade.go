package sbe

import "fmt"

// Trade is template 2: a 49-byte fixed block and a venue tail.
type Trade struct {
	TradeID   int64
	OrderID   int64
	Symbol    string
	Side      Side
	Quantity  int64
	Price     int64
	Timestamp int64
	Venue     string
}

func (Trade) TemplateID() uint16  { return TemplateTrade }
func (Trade) BlockLength() uint16 { return TradeBlockLength }

func (t Trade) EncodedLength() int {
	return HeaderLength + int(TradeBlockLength) + VarLengthPrefix + len(t.Venue)
}

func (t Trade) Meta() Meta {
	return Meta{Type: TypeTrade, TemplateID: TemplateTrade, Symbol: t.Symbol, Timestamp: t.Timestamp}
}

func (t Trade) Validate() error {
	if err := checkSymbol(t.Symbol); err != nil {
		return fieldErr(TypeTrade, "symbol", err)
	}
	if !t.Side.Valid() {
		return fieldErr(TypeTrade, "side", fmt.Errorf("%w: side 0x%02x", ErrMalformedEnum, byte(t.Side)))
	}
	if err := checkVarString(t.Venue); err != nil {
		return fieldErr(TypeTrade, "venue", err)
	}
	return nil
}

func (t Trade) encodeBody(b []byte, body int) (int, error) {
	w := fieldWriter{b: b, base: body, msg: TypeTrade}
	w.int64("tradeId", tradeIDOff, t.TradeID)
	w.int64("orderId", tradeOrderIDOff, t.OrderID)
	w.symbol("symbol", tradeSymbolOff, t.Symbol)
	w.byte("side", tradeSideOff, byte(t.Side))
	w.int64("quantity", tradeQuantityOff, t.Quantity)
	w.int64("price", tradePriceOff, t.Price)
	w.int64("timestamp", tradeTimestampOff, t.Timestamp)
	end := w.varString("venue", int(TradeBlockLength), t.Venue)
	return end, w.err
}

func decodeTrade(b []byte, body int, h MessageHeader) (Message, int, error) {
	if err := h.check(TradeBlockLength); err != nil {
		return nil, 0, err
	}
	r := fieldReader{b: b, base: body, msg: TypeTrade}
	t := Trade{
		TradeID:   r.int64("tradeId", tradeIDOff),
		OrderID:   r.int64("orderId", tradeOrderIDOff),
		Symbol:    r.symbol("symbol", tradeSymbolOff),
		Side:      r.side("side", tradeSideOff),
		Quantity:  r.int64("quantity", tradeQuantityOff),
		Price:     r.int64("price", tradePriceOff),
		Timestamp: r.int64("timestamp", tradeTimestampOff),
	}
	var end int
	t.Venue, end = r.varString("venue", int(h.BlockLength))
	if r.err != nil {
		return nil, 0, r.err
	}
	return t, end, nil
}

// EncodeTrade is Encode for a Trade.
func EncodeTrade(t Trade) ([]byte, error) { return Encode(t) }

// DecodeTrade decodes a frame that must carry template 2.
func DecodeTrade(b []byte) (Trade, error) {
	m, err := decodeAs(b, TemplateTrade)
	if err != nil {
		return Trade{}, err
	}
	return m.(Trade), nil
}
