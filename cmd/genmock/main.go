// Command genmock writes a small boundary file and observation workbook that
// the dashboard can serve without the real municipal data. One sheet region is
// spelled without its accent so the join diagnostics have something to report.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/climate-map/internal/mockdata"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "directory to write the fixtures into")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}

	boundaries, observations, err := mockdata.WriteFixtures(*out)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d boundaries to %s\n", len(mockdata.Municipalities), boundaries)
	fmt.Printf("Wrote %d observations to %s\n", len(mockdata.Observations()), observations)
	fmt.Printf("\nBOUNDARIES_PATH=%q OBSERVATIONS_PATH=%q go run ./cmd/dashboard\n", boundaries, observations)
	return nil
}
