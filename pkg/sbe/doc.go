// Package sbe is a fixed-schema binary codec for order, trade and
// market-data snapshot messages.
//
// Every frame is an 8-byte little-endian header (block length, template id,
// schema id, version) followed by the message's fixed block and one tail: a
// length-prefixed ASCII string for Order and Trade, a repeating group of
// price levels for MarketData. All functions are stateless; buffers and
// offsets are passed on every call.
package sbe
