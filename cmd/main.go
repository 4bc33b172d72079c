package main

import (
	"os"

	"wxr_validator/internal/report"
)

func main() {
	sink := report.NewTextSink(os.Stdout, os.Stderr)

	if err := newRootCmd(sink).Execute(); err != nil {
		sink.Error("%v", err)
		os.Exit(1)
	}
}
