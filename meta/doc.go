// Package meta describes a compressed graph: the scalar properties shared
// by the encoder and the decoder, their ".info" text rendering, and the
// version header at the start of every ".gc" bitstream.
//
// Versions
//
//	"1"   header bit 1, then N:int32 E:int64 used:int32 level:int32 root:int32
//	"1.1" header bits 01; the properties live in the sibling .info file
//
//	Bits 00 are reserved and rejected. New files default to 1.1; both
//	versions are readable.
//
// Info file
//
//	  Nodes = 5
//	  Edges = 7
//	  AvgDegree = 1.4
//	  Isolated = 0
//	  Level = 1000
//	  BfsRoot = 0
//
//	It is parsed with viper's properties codec; unknown keys are ignored,
//	missing or negative required keys yield ErrFormat. AvgDegree is derived
//	and only written for humans.
package meta
