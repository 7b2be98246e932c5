// Copyright 2024 Rob Marissen.
// SPDX-License-Identifier: MIT

// mzindex - mass spectrometry dataset indexing and peak fitting tool
package main

import (
	"log"

	"github.com/524D/mzindex/cmd/mzindex/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := cmd.Execute(); err != nil {
		log.Fatalf("mzindex: %v", err)
	}
}
