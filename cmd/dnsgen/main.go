// dnsgen writes a sample passive-DNS CSV in the column layout casedns
// expects, for demos and local testing.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	var out string
	var rows int
	var seed int64
	flag.StringVar(&out, "out", "data/domain-ip-res.csv", "output CSV path")
	flag.IntVar(&rows, "rows", 20, "number of records to generate")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(seed)

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{
		"observable:DomainName",
		"core:kindOfRelationship",
		"observable:IPv4Address",
		"observable:timeDateStamp",
	})

	end := time.Now().UTC()
	start := end.Add(-365 * 24 * time.Hour)
	for i := 0; i < rows; i++ {
		stamp := faker.DateRange(start, end).UTC().Format(time.RFC3339)
		_ = w.Write([]string{
			faker.DomainName(),
			"resolves to",
			faker.IPv4Address(),
			stamp,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("wrote", rows, "records to", out)
}
