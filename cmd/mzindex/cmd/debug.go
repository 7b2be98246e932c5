// This file contains code to help debugging, and is separated from
// the rest in order not to litter the main code with debugging stuff

package cmd

import (
	"fmt"
	"os"

	"github.com/524D/mzindex/mzml"
)

var debugEnabled = os.Getenv("MZINDEX_DEBUG") == "1"

// debugLogInstruments prints the analyzer names of each source when
// MZINDEX_DEBUG=1 is set.
func debugLogInstruments(ds *mzml.DataSet) {
	if !debugEnabled {
		return
	}
	for i, path := range ds.SourcePaths() {
		names, err := ds.Instruments(i)
		if err != nil {
			fmt.Printf("debug: instruments of %s: %v\n", path, err)
			continue
		}
		fmt.Printf("debug: %s analyzers: %v\n", path, names)
	}
}
