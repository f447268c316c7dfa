package main

import (
	"fmt"

	"github.com/uhyunpark/sbewire/pkg/sbe"
)

// demoMessages are the reference samples: an AAPL order, the trade that
// filled it and a four-level book snapshot.
func demoMessages(ts int64) []sbe.Message {
	return []sbe.Message{
		sbe.Order{
			OrderID:       12345,
			Symbol:        "AAPL",
			Side:          sbe.Buy,
			Quantity:      1000,
			Price:         15000, // $150.00 in ticks
			Timestamp:     ts,
			IsActive:      sbe.True,
			ClientOrderID: "CLIENT-ORDER-001",
		},
		sbe.Trade{
			TradeID:   67890,
			OrderID:   12345,
			Symbol:    "AAPL",
			Side:      sbe.Buy,
			Quantity:  500,
			Price:     14950,
			Timestamp: ts,
			Venue:     "NASDAQ",
		},
		sbe.MarketData{
			Symbol:    "AAPL",
			Timestamp: ts,
			BidPrice:  14950,
			BidSize:   2000,
			AskPrice:  15050,
			AskSize:   1500,
			LastPrice: 15000,
			LastSize:  500,
			Levels: []sbe.PriceLevel{
				{Price: 14900, Size: 1000, Side: sbe.Buy},
				{Price: 14950, Size: 2000, Side: sbe.Buy},
				{Price: 15050, Size: 1500, Side: sbe.Sell},
				{Price: 15100, Size: 800, Side: sbe.Sell},
			},
		},
	}
}

func sameMessage(a, b sbe.Message) bool {
	if md, ok := a.(sbe.MarketData); ok {
		other, ok := b.(sbe.MarketData)
		return ok && md.Equal(other)
	}
	return a == b
}

func (c *cli) demo() error {
	fmt.Fprintln(c.stdout, "Running SBE demonstration examples...")

	failed := 0
	for _, m := range demoMessages(c.clock.Now().UnixMilli()) {
		name := m.Meta().Type
		fmt.Fprintf(c.stdout, "\n=== %s round trip ===\n", name)
		fmt.Fprintf(c.stdout, "Original: %+v\n", m)

		frame, err := sbe.Encode(m)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(c.stdout, "Serialized size: %d bytes\n", len(frame))

		got, err := sbe.DecodeAny(frame)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(c.stdout, "Deserialized: %+v\n", got)

		if sameMessage(m, got) {
			fmt.Fprintf(c.stdout, "✓ %s serialization/deserialization successful!\n", name)
		} else {
			fmt.Fprintf(c.stdout, "✗ %s serialization/deserialization failed!\n", name)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of 3 examples failed", failed)
	}
	fmt.Fprintln(c.stdout, "\nAll examples completed successfully!")
	return nil
}
