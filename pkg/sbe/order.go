package sbe

import "fmt"

// Order is template 1: a 42-byte fixed block and a clientOrderId tail.
type Order struct {
	OrderID       int64
	Symbol        string
	Side          Side
	Quantity      int64
	Price         int64 // integer ticks
	Timestamp     int64 // epoch millis
	IsActive      ActiveFlag
	ClientOrderID string
}

func (Order) TemplateID() uint16  { return TemplateOrder }
func (Order) BlockLength() uint16 { return OrderBlockLength }

func (o Order) EncodedLength() int {
	return HeaderLength + int(OrderBlockLength) + VarLengthPrefix + len(o.ClientOrderID)
}

func (o Order) Meta() Meta {
	return Meta{Type: TypeOrder, TemplateID: TemplateOrder, Symbol: o.Symbol, Timestamp: o.Timestamp}
}

func (o Order) Validate() error {
	if err := checkSymbol(o.Symbol); err != nil {
		return fieldErr(TypeOrder, "symbol", err)
	}
	if !o.Side.Valid() {
		return fieldErr(TypeOrder, "side", fmt.Errorf("%w: side 0x%02x", ErrMalformedEnum, byte(o.Side)))
	}
	if !o.IsActive.Valid() {
		return fieldErr(TypeOrder, "isActive", fmt.Errorf("%w: active flag 0x%02x", ErrMalformedEnum, byte(o.IsActive)))
	}
	if err := checkVarString(o.ClientOrderID); err != nil {
		return fieldErr(TypeOrder, "clientOrderId", err)
	}
	return nil
}

func (o Order) encodeBody(b []byte, body int) (int, error) {
	w := fieldWriter{b: b, base: body, msg: TypeOrder}
	w.int64("orderId", orderIDOff, o.OrderID)
	w.symbol("symbol", orderSymbolOff, o.Symbol)
	w.byte("side", orderSideOff, byte(o.Side))
	w.int64("quantity", orderQuantityOff, o.Quantity)
	w.int64("price", orderPriceOff, o.Price)
	w.int64("timestamp", orderTimestampOff, o.Timestamp)
	w.byte("isActive", orderActiveOff, byte(o.IsActive))
	end := w.varString("clientOrderId", int(OrderBlockLength), o.ClientOrderID)
	return end, w.err
}

func decodeOrder(b []byte, body int, h MessageHeader) (Message, int, error) {
	if err := h.check(OrderBlockLength); err != nil {
		return nil, 0, err
	}
	r := fieldReader{b: b, base: body, msg: TypeOrder}
	o := Order{
		OrderID:   r.int64("orderId", orderIDOff),
		Symbol:    r.symbol("symbol", orderSymbolOff),
		Side:      r.side("side", orderSideOff),
		Quantity:  r.int64("quantity", orderQuantityOff),
		Price:     r.int64("price", orderPriceOff),
		Timestamp: r.int64("timestamp", orderTimestampOff),
		IsActive:  r.flag("isActive", orderActiveOff),
	}
	// the header's block length, not ours, locates the tail
	var end int
	o.ClientOrderID, end = r.varString("clientOrderId", int(h.BlockLength))
	if r.err != nil {
		return nil, 0, r.err
	}
	return o, end, nil
}

// EncodeOrder is Encode for an Order.
func EncodeOrder(o Order) ([]byte, error) { return Encode(o) }

// DecodeOrder decodes a frame that must carry template 1.
func DecodeOrder(b []byte) (Order, error) {
	m, err := decodeAs(b, TemplateOrder)
	if err != nil {
		return Order{}, err
	}
	return m.(Order), nil
}
