// Package jsonrec converts between JSON text records and sbe messages.
//
// Records use camelCase keys, enum names for side ("BUY", "SELL") and the
// active flag ("TRUE", "FALSE"), and a levels array for market data. Every
// key is required except levels, which defaults to empty.
package jsonrec

import (
	"encoding/json"
	"fmt"

	"github.com/uhyunpark/sbewire/pkg/sbe"
)

// Parse reads a record of the named message type.
func Parse(msgType string, data []byte) (sbe.Message, error) {
	switch msgType {
	case sbe.TypeOrder:
		return ParseOrder(data)
	case sbe.TypeTrade:
		return ParseTrade(data)
	case sbe.TypeMarketData:
		return ParseMarketData(data)
	}
	return nil, fmt.Errorf("%w: message type %q", sbe.ErrUnknownSchema, msgType)
}

// ParseOrder reads an order record.
func ParseOrder(data []byte) (sbe.Order, error) {
	var r orderRecord
	if err := unmarshal(sbe.TypeOrder, data, &r); err != nil {
		return sbe.Order{}, err
	}
	err := require(sbe.TypeOrder,
		need{"orderId", r.OrderID != nil},
		need{"symbol", r.Symbol != nil},
		need{"side", r.Side != nil},
		need{"quantity", r.Quantity != nil},
		need{"price", r.Price != nil},
		need{"timestamp", r.Timestamp != nil},
		need{"isActive", r.IsActive != nil},
		need{"clientOrderId", r.ClientOrderID != nil},
	)
	if err != nil {
		return sbe.Order{}, err
	}
	return sbe.Order{
		OrderID:       *r.OrderID,
		Symbol:        *r.Symbol,
		Side:          *r.Side,
		Quantity:      *r.Quantity,
		Price:         *r.Price,
		Timestamp:     *r.Timestamp,
		IsActive:      *r.IsActive,
		ClientOrderID: *r.ClientOrderID,
	}, nil
}

// ParseTrade reads a trade record.
func ParseTrade(data []byte) (sbe.Trade, error) {
	var r tradeRecord
	if err := unmarshal(sbe.TypeTrade, data, &r); err != nil {
		return sbe.Trade{}, err
	}
	err := require(sbe.TypeTrade,
		need{"tradeId", r.TradeID != nil},
		need{"orderId", r.OrderID != nil},
		need{"symbol", r.Symbol != nil},
		need{"side", r.Side != nil},
		need{"quantity", r.Quantity != nil},
		need{"price", r.Price != nil},
		need{"timestamp", r.Timestamp != nil},
		need{"venue", r.Venue != nil},
	)
	if err != nil {
		return sbe.Trade{}, err
	}
	return sbe.Trade{
		TradeID:   *r.TradeID,
		OrderID:   *r.OrderID,
		Symbol:    *r.Symbol,
		Side:      *r.Side,
		Quantity:  *r.Quantity,
		Price:     *r.Price,
		Timestamp: *r.Timestamp,
		Venue:     *r.Venue,
	}, nil
}

// ParseMarketData reads a market data record. Levels keep their array order.
func ParseMarketData(data []byte) (sbe.MarketData, error) {
	var r marketDataRecord
	if err := unmarshal(sbe.TypeMarketData, data, &r); err != nil {
		return sbe.MarketData{}, err
	}
	err := require(sbe.TypeMarketData,
		need{"symbol", r.Symbol != nil},
		need{"timestamp", r.Timestamp != nil},
		need{"bidPrice", r.BidPrice != nil},
		need{"bidSize", r.BidSize != nil},
		need{"askPrice", r.AskPrice != nil},
		need{"askSize", r.AskSize != nil},
		need{"lastPrice", r.LastPrice != nil},
		need{"lastSize", r.LastSize != nil},
	)
	if err != nil {
		return sbe.MarketData{}, err
	}
	md := sbe.MarketData{
		Symbol:    *r.Symbol,
		Timestamp: *r.Timestamp,
		BidPrice:  *r.BidPrice,
		BidSize:   *r.BidSize,
		AskPrice:  *r.AskPrice,
		AskSize:   *r.AskSize,
		LastPrice: *r.LastPrice,
		LastSize:  *r.LastSize,
	}
	if len(r.Levels) > 0 {
		md.Levels = make([]sbe.PriceLevel, len(r.Levels))
	}
	for i, l := range r.Levels {
		err := require(sbe.TypeMarketData,
			need{fmt.Sprintf("levels[%d].price", i), l.Price != nil},
			need{fmt.Sprintf("levels[%d].size", i), l.Size != nil},
			need{fmt.Sprintf("levels[%d].side", i), l.Side != nil},
		)
		if err != nil {
			return sbe.MarketData{}, err
		}
		md.Levels[i] = sbe.PriceLevel{Price: *l.Price, Size: *l.Size, Side: *l.Side}
	}
	return md, nil
}

// Format renders a message as an indented record.
func Format(m sbe.Message) ([]byte, error) {
	var v any
	switch m := m.(type) {
	case sbe.Order:
		v = orderJSON{
			OrderID:       m.OrderID,
			Symbol:        m.Symbol,
			Side:          m.Side,
			Quantity:      m.Quantity,
			Price:         m.Price,
			Timestamp:     m.Timestamp,
			IsActive:      m.IsActive,
			ClientOrderID: m.ClientOrderID,
		}
	case sbe.Trade:
		v = tradeJSON(m)
	case sbe.MarketData:
		levels := make([]levelJSON, len(m.Levels))
		for i, l := range m.Levels {
			levels[i] = levelJSON(l)
		}
		v = marketDataJSON{
			Symbol:    m.Symbol,
			Timestamp: m.Timestamp,
			BidPrice:  m.BidPrice,
			BidSize:   m.BidSize,
			AskPrice:  m.AskPrice,
			AskSize:   m.AskSize,
			LastPrice: m.LastPrice,
			LastSize:  m.LastSize,
			Levels:    levels,
		}
	default:
		return nil, fmt.Errorf("%w: cannot format %T", sbe.ErrUnknownSchema, m)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", m.Meta().Type, err)
	}
	return out, nil
}

func unmarshal(msgType string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s record: %w", msgType, err)
	}
	return nil
}

type need struct {
	field string
	set   bool
}

func require(msgType string, needs ...need) error {
	for _, n := range needs {
		if !n.set {
			return &sbe.FieldError{Message: msgType, Field: n.field, Err: sbe.ErrMissingField}
		}
	}
	return nil
}
