package compress_test

import (
	"testing"

	"github.com/katalvlaran/gcbfs/compress"
)

func benchmarkCompress(b *testing.B, opts ...compress.Option) {
	g := webGraph(b, 1<<14, 0, 1)
	b.ReportAllocs()
	b.ResetTimer()
	var bits int64
	for i := 0; i < b.N; i++ {
		res, err := compress.Compress(g, nil, opts...)
		if err != nil {
			b.Fatal(err)
		}
		bits = res.Bits
	}
	b.ReportMetric(float64(bits)/float64(g.EdgeCount()), "bits/link")
}

func BenchmarkCompress_Default(b *testing.B) { benchmarkCompress(b) }

func BenchmarkCompress_Fast(b *testing.B) { benchmarkCompress(b, compress.WithFast()) }

func BenchmarkCompress_Level100(b *testing.B) { benchmarkCompress(b, compress.WithLevel(100)) }
