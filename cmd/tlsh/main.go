// Command tlsh hashes files with TLSH and compares digests.
//
// Hashing prints one "DIGEST<tab>path" line per file, the same shape as the
// reference TLSH binary:
//
//	tlsh file1 file2 ...
//
// Comparing takes two digest strings and prints their distance:
//
//	tlsh -d DIGEST1 DIGEST2
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/klinvill/tlsh/tlsh256"
)

func main() {
	log.SetFlags(0)

	diffMode := flag.Bool("d", false, "compare two digest strings instead of hashing files")
	flag.Parse()

	if *diffMode {
		if flag.NArg() != 2 {
			log.Fatal("-d requires exactly two digest strings")
		}
		dist, err := tlsh256.Diff(flag.Arg(0), flag.Arg(1))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(dist)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s\t%s\n", tlsh256.Hash(data), path)
	}
}
