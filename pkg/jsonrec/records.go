package jsonrec

import "github.com/uhyunpark/sbewire/pkg/sbe"

// Input records. Pointers distinguish an absent key from a zero value.

type orderRecord struct {
	OrderID       *int64          `json:"orderId"`
	Symbol        *string         `json:"symbol"`
	Side          *sbe.Side       `json:"side"`
	Quantity      *int64          `json:"quantity"`
	Price         *int64          `json:"price"`
	Timestamp     *int64          `json:"timestamp"`
	IsActive      *sbe.ActiveFlag `json:"isActive"`
	ClientOrderID *string         `json:"clientOrderId"`
}

type tradeRecord struct {
	TradeID   *int64    `json:"tradeId"`
	OrderID   *int64    `json:"orderId"`
	Symbol    *string   `json:"symbol"`
	Side      *sbe.Side `json:"side"`
	Quantity  *int64    `json:"quantity"`
	Price     *int64    `json:"price"`
	Timestamp *int64    `json:"timestamp"`
	Venue     *string   `json:"venue"`
}

type levelRecord struct {
	Price *int64    `json:"price"`
	Size  *int64    `json:"size"`
	Side  *sbe.Side `json:"side"`
}

type marketDataRecord struct {
	Symbol    *string       `json:"symbol"`
	Timestamp *int64        `json:"timestamp"`
	BidPrice  *int64        `json:"bidPrice"`
	BidSize   *int64        `json:"bidSize"`
	AskPrice  *int64        `json:"askPrice"`
	AskSize   *int64        `json:"askSize"`
	LastPrice *int64        `json:"lastPrice"`
	LastSize  *int64        `json:"lastSize"`
	Levels    []levelRecord `json:"levels"`
}

// Output records, in wire field order.

type orderJSON struct {
	OrderID       int64          `json:"orderId"`
	Symbol        string         `json:"symbol"`
	Side          sbe.Side       `json:"side"`
	Quantity      int64          `json:"quantity"`
	Price         int64          `json:"price"`
	Timestamp     int64          `json:"timestamp"`
	IsActive      sbe.ActiveFlag `json:"isActive"`
	ClientOrderID string         `json:"clientOrderId"`
}

type tradeJSON struct {
	TradeID   int64    `json:"tradeId"`
	OrderID   int64    `json:"orderId"`
	Symbol    string   `json:"symbol"`
	Side      sbe.Side `json:"side"`
	Quantity  int64    `json:"quantity"`
	Price     int64    `json:"price"`
	Timestamp int64    `json:"timestamp"`
	Venue     string   `json:"venue"`
}

type levelJSON struct {
	Price int64    `json:"price"`
	Size  int64    `json:"size"`
	Side  sbe.Side `json:"side"`
}

type marketDataJSON struct {
	Symbol    string      `json:"symbol"`
	Timestamp int64       `json:"timestamp"`
	BidPrice  int64       `json:"bidPrice"`
	BidSize   int64       `json:"bidSize"`
	AskPrice  int64       `json:"askPrice"`
	AskSize   int64       `json:"askSize"`
	LastPrice int64       `json:"lastPrice"`
	LastSize  int64       `json:"lastSize"`
	Levels    []levelJSON `json:"levels"`
}
