package sbe

import "math"

// Schema constants for the single supported version.
const (
	SchemaID      uint16 = 1
	SchemaVersion uint16 = 1

	TemplateOrder      uint16 = 1
	TemplateTrade      uint16 = 2
	TemplateMarketData uint16 = 3

	OrderBlockLength      uint16 = 42
	TradeBlockLength      uint16 = 49
	MarketDataBlockLength uint16 = 64

	HeaderLength      = 8
	SymbolLength      = 8
	VarLengthPrefix   = 4
	GroupHeaderLength = 4
	PriceLevelLength  = 17
	MaxLevels         = math.MaxUint16

	// scratch sizes for encoding; grown when a message needs more
	smallScratch = 1024
	largeScratch = 2048
)

// Body-relative field offsets. These are fixed per schema version and are
// never derived from field order.
const (
	orderIDOff        = 0
	orderSymbolOff    = 8
	orderSideOff      = 16
	orderQuantityOff  = 17
	orderPriceOff     = 25
	orderTimestampOff = 33
	orderActiveOff    = 41

	tradeIDOff        = 0
	tradeOrderIDOff   = 8
	tradeSymbolOff    = 16
	tradeSideOff      = 24
	tradeQuantityOff  = 25
	tradePriceOff     = 33
	tradeTimestampOff = 41

	mdSymbolOff    = 0
	mdTimestampOff = 8
	mdBidPriceOff  = 16
	mdBidSizeOff   = 24
	mdAskPriceOff  = 32
	mdAskSizeOff   = 40
	mdLastPriceOff = 48
	mdLastSizeOff  = 56

	levelPriceOff = 0
	levelSizeOff  = 8
	levelSideOff  = 16
)

// FieldKind names the wire encoding of a field.
type FieldKind string

const (
	KindInt64   FieldKind = "int64"
	KindSymbol  FieldKind = "char[8]"
	KindSide    FieldKind = "side"
	KindFlag    FieldKind = "bool"
	KindVarData FieldKind = "varData"
	KindGroup   FieldKind = "group"
)

// Field is one entry of a layout table. Offset is relative to the start of
// the message body (or of the group entry for Entry fields).
type Field struct {
	Name   string    `json:"name"`
	Offset int       `json:"offset"`
	Width  int       `json:"width"`
	Kind   FieldKind `json:"kind"`
}

// Layout describes one message shape on the wire.
type Layout struct {
	Message     string  `json:"message"`
	TemplateID  uint16  `json:"templateId"`
	BlockLength int     `json:"blockLength"`
	Fields      []Field `json:"fields"`
	// Tail starts at BlockLength; its Width is the length prefix or group header.
	Tail Field `json:"tail"`
	// Entry is the group record layout, nil for a var-data tail.
	Entry []Field `json:"entry,omitempty"`
}

// Layouts returns the field tables for every supported message.
func Layouts() []Layout {
	return []Layout{
		{
			Message:     TypeOrder,
			TemplateID:  TemplateOrder,
			BlockLength: int(OrderBlockLength),
			Fields: []Field{
				{"orderId", orderIDOff, 8, KindInt64},
				{"symbol", orderSymbolOff, SymbolLength, KindSymbol},
				{"side", orderSideOff, 1, KindSide},
				{"quantity", orderQuantityOff, 8, KindInt64},
				{"price", orderPriceOff, 8, KindInt64},
				{"timestamp", orderTimestampOff, 8, KindInt64},
				{"isActive", orderActiveOff, 1, KindFlag},
			},
			Tail: Field{"clientOrderId", int(OrderBlockLength), VarLengthPrefix, KindVarData},
		},
		{
			Message:     TypeTrade,
			TemplateID:  TemplateTrade,
			BlockLength: int(TradeBlockLength),
			Fields: []Field{
				{"tradeId", tradeIDOff, 8, KindInt64},
				{"orderId", tradeOrderIDOff, 8, KindInt64},
				{"symbol", tradeSymbolOff, SymbolLength, KindSymbol},
				{"side", tradeSideOff, 1, KindSide},
				{"quantity", tradeQuantityOff, 8, KindInt64},
				{"price", tradePriceOff, 8, KindInt64},
				{"timestamp", tradeTimestampOff, 8, KindInt64},
			},
			Tail: Field{"venue", int(TradeBlockLength), VarLengthPrefix, KindVarData},
		},
		{
			Message:     TypeMarketData,
			TemplateID:  TemplateMarketData,
			BlockLength: int(MarketDataBlockLength),
			Fields: []Field{
				{"symbol", mdSymbolOff, SymbolLength, KindSymbol},
				{"timestamp", mdTimestampOff, 8, KindInt64},
				{"bidPrice", mdBidPriceOff, 8, KindInt64},
				{"bidSize", mdBidSizeOff, 8, KindInt64},
				{"askPrice", mdAskPriceOff, 8, KindInt64},
				{"askSize", mdAskSizeOff, 8, KindInt64},
				{"lastPrice", mdLastPriceOff, 8, KindInt64},
				{"lastSize", mdLastSizeOff, 8, KindInt64},
			},
			Tail: Field{"levels", int(MarketDataBlockLength), GroupHeaderLength, KindGroup},
			Entry: []Field{
				{"price", levelPriceOff, 8, KindInt64},
				{"size", levelSizeOff, 8, KindInt64},
				{"side", levelSideOff, 1, KindSide},
			},
		},
	}
}

// LayoutOf returns the layout for a template id.
func LayoutOf(templateID uint16) (Layout, bool) {
	for _, l := range Layouts() {
		if l.TemplateID == templateID {
			return l, true
		}
	}
	return Layout{}, false
}
