package codec

import (
	"testing"
)

func BenchmarkEncode(b *testing.B) {
	region := make([]byte, 4096)
	loc := &Location{File: "internal/motor/controller.go", Line: 412, Column: 9}
	msg := writeString("panicked at 'runtime error: index out of range [12] with length 8'")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(region, loc, msg)
	}
}

func BenchmarkEncodeMinimal(b *testing.B) {
	region := make([]byte, 4096)
	loc := &Location{File: "internal/motor/controller.go", Line: 412, Column: 9}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(region, loc, nil)
	}
}

func BenchmarkDetectAndConsume(b *testing.B) {
	region := make([]byte, 4096)
	loc := &Location{File: "internal/motor/controller.go", Line: 412, Column: 9}
	msg := writeString("panicked at 'runtime error: index out of range [12] with length 8'")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		Encode(region, loc, msg)
		b.StartTimer()
		if _, ok := DetectAndConsume(region); !ok {
			b.Fatal("expected a valid record")
		}
	}
}
