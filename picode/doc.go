// Package picode implements the π-code family of universal integer codes
// used for every variable-length field of the compressed graph format.
//
// Code shape
//
//	For n >= 1 let s be the bit length of n. The code of n with parameter k
//	folds s k times by ceil-halving it, recording the parity of each step.
//	It emits sFinal in unary (sFinal-1 zeros then a one), the k parity bits
//	(last fold first), and finally the s-1 low bits of n:
//
//	  k = 0 → Elias gamma:      1 → "1", 2 → "010", 3 → "011", 4 → "00100"
//	  k = 1 → lengths grow ~ 2·√(log n) faster codes for large n
//
//	The zero-extended form Encode0 spends one extra bit: n == 0 → "1",
//	otherwise "0" followed by Encode(n, k).
//
// Parameters
//
//	k ∈ [0, MaxK]. The chunk encoder evaluates all four parameters per chunk
//	and records the cheapest one in the chunk header.
//
// Cost
//
//	Len and Len0 report code lengths without writing. An Encoder caches
//	lengths of small values (WithCacheLimit) since the chunk encoder asks for
//	the same costs millions of times.
//
// Errors
//
//	Encoder and Decoder use sticky errors. Invalid values (n < 0, n == 0 for
//	Encode) record ErrInvalidValue, an out-of-range k records
//	ErrInvalidParam, and a decoder seeing an impossible unary prefix records
//	ErrCorrupt.
package picode
