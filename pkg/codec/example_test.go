package codec_test

import (
	"fmt"
	"io"

	"github.com/ssargent/muninn/pkg/codec"
)

// ExampleDetectAndConsume demonstrates the fault-then-boot cycle over a
// single region: encode at fault time, consume exactly once after reboot.
func ExampleDetectAndConsume() {
	region := make([]byte, 64)

	// Fault time: record the site and message.
	loc := &codec.Location{File: "main.go", Line: 42}
	codec.Encode(region, loc, func(w io.Writer) {
		io.WriteString(w, "index out of range")
	})

	// Next boot: detect and consume.
	rec, ok := codec.DetectAndConsume(region)
	fmt.Println(ok)
	fmt.Printf("%s:%d\n", rec.Filename(), rec.Line)
	fmt.Println(rec.Message())

	// The record is gone on the boot after that.
	_, ok = codec.DetectAndConsume(region)
	fmt.Println(ok)

	// Output:
	// true
	// main.go:42
	// index out of range
	// false
}

// ExampleInspect demonstrates the validating decode used by host-side
// tooling on raw region dumps.
func ExampleInspect() {
	region := make([]byte, 64)
	codec.Encode(region, &codec.Location{File: "x.rs", Line: 12, Column: 5}, func(w io.Writer) {
		io.WriteString(w, "boom")
	})

	report, err := codec.Inspect(region)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(report.Render())

	// Output:
	// fault record: valid
	//   source:   x.rs:12:5
	//   message:  boom
	//   occupied: 20 of 64 bytes
}
