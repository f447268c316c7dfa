package sbe

// MarketData is template 3: a 64-byte fixed block and a levels group.
type MarketData struct {
	Symbol    string
	Timestamp int64
	BidPrice  int64
	BidSize   int64
	AskPrice  int64
	AskSize   int64
	LastPrice int64
	LastSize  int64
	// Levels keep their order on the wire.
	Levels []PriceLevel
}

func (MarketData) TemplateID() uint16  { return TemplateMarketData }
func (MarketData) BlockLength() uint16 { return MarketDataBlockLength }

func (md MarketData) EncodedLength() int {
	return HeaderLength + int(MarketDataBlockLength) + GroupHeaderLength + len(md.Levels)*PriceLevelLength
}

func (md MarketData) Meta() Meta {
	return Meta{Type: TypeMarketData, TemplateID: TemplateMarketData, Symbol: md.Symbol, Timestamp: md.Timestamp}
}

func (md MarketData) Validate() error {
	if err := checkSymbol(md.Symbol); err != nil {
		return fieldErr(TypeMarketData, "symbol", err)
	}
	return checkLevels(md.Levels)
}

// Equal compares field by field, levels in order. A nil and an empty
// Levels slice are equal.
func (md MarketData) Equal(other MarketData) bool {
	if md.Symbol != other.Symbol || md.Timestamp != other.Timestamp ||
		md.BidPrice != other.BidPrice || md.BidSize != other.BidSize ||
		md.AskPrice != other.AskPrice || md.AskSize != other.AskSize ||
		md.LastPrice != other.LastPrice || md.LastSize != other.LastSize {
		return false
	}
	if len(md.Levels) != len(other.Levels) {
		return false
	}
	for i := range md.Levels {
		if md.Levels[i] != other.Levels[i] {
			return false
		}
	}
	return true
}

func (md MarketData) encodeBody(b []byte, body int) (int, error) {
	w := fieldWriter{b: b, base: body, msg: TypeMarketData}
	w.symbol("symbol", mdSymbolOff, md.Symbol)
	w.int64("timestamp", mdTimestampOff, md.Timestamp)
	w.int64("bidPrice", mdBidPriceOff, md.BidPrice)
	w.int64("bidSize", mdBidSizeOff, md.BidSize)
	w.int64("askPrice", mdAskPriceOff, md.AskPrice)
	w.int64("askSize", mdAskSizeOff, md.AskSize)
	w.int64("lastPrice", mdLastPriceOff, md.LastPrice)
	w.int64("lastSize", mdLastSizeOff, md.LastSize)
	if w.err != nil {
		return 0, w.err
	}
	return putLevels(b, body+int(MarketDataBlockLength), md.Levels)
}

func decodeMarketData(b []byte, body int, h MessageHeader) (Message, int, error) {
	if err := h.check(MarketDataBlockLength); err != nil {
		return nil, 0, err
	}
	r := fieldReader{b: b, base: body, msg: TypeMarketData}
	md := MarketData{
		Symbol:    r.symbol("symbol", mdSymbolOff),
		Timestamp: r.int64("timestamp", mdTimestampOff),
		BidPrice:  r.int64("bidPrice", mdBidPriceOff),
		BidSize:   r.int64("bidSize", mdBidSizeOff),
		AskPrice:  r.int64("askPrice", mdAskPriceOff),
		AskSize:   r.int64("askSize", mdAskSizeOff),
		LastPrice: r.int64("lastPrice", mdLastPriceOff),
		LastSize:  r.int64("lastSize", mdLastSizeOff),
	}
	if r.err != nil {
		return nil, 0, r.err
	}
	levels, end, err := getLevels(b, body+int(h.BlockLength))
	if err != nil {
		return nil, 0, err
	}
	md.Levels = levels
	return md, end, nil
}

// EncodeMarketData is Encode for a MarketData snapshot.
func EncodeMarketData(md MarketData) ([]byte, error) { return Encode(md) }

// DecodeMarketData decodes a frame that must carry template 3.
func DecodeMarketData(b []byte) (MarketData, error) {
	m, err := decodeAs(b, TemplateMarketData)
	if err != nil {
		return MarketData{}, err
	}
	return m.(MarketData), nil
}
