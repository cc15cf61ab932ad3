// Package bitpack packs (price, year, negotiable) into a single 64-bit word.
//
// # Layout (LSB first)
//
//	bits  0..1   negotiable flag (masked to 2 bits)
//	bits  2..33  price in Toman (floored at 0, masked to 32 bits)
//	bits 34..49  year (floored at 0, masked to 16 bits)
//	bits 50..63  reserved, always zero
//
// Out-of-range inputs wrap instead of saturating, so Unpack(Pack(p, y, f))
// returns (p, y, f) only for 0 <= p < 2^32, 0 <= y < 2^16 and 0 <= f < 4.
package bitpack
