// Command catalog-lint validates a menu catalog file and prints a summary.
// It exits non-zero when the catalog fails validation, which makes it usable
// as a pre-deploy check in CI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xenking/menucart/internal/domain/catalog"
	"github.com/xenking/menucart/internal/menu"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <catalog.json[.gz]>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	s, err := menu.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-lint: %s: %v\n", path, err)
		os.Exit(1)
	}

	items := s.List()
	cats, subs := catalog.Facets(items)

	band := catalog.Query{Filter: catalog.FilterUnder100}
	discounted, under100 := 0, 0
	for _, it := range items {
		if it.Discounted() {
			discounted++
		}
		if band.Matches(it) {
			under100++
		}
	}

	fmt.Printf("%s: OK\n", path)
	fmt.Printf("  items:         %d\n", len(items))
	fmt.Printf("  categories:    %d %v\n", len(cats), cats)
	fmt.Printf("  subcategories: %d %v\n", len(subs), subs)
	fmt.Printf("  discounted:    %d\n", discounted)
	fmt.Printf("  under ₹100:    %d\n", under100)
}
