// Command tlsh-eval runs the similarity-curve experiments: it perturbs a
// source text one random edit at a time and records the TLSH distance and
// ssdeep similarity against the unmodified text after each edit, writing one
// CSV per experiment. It can also collect TLSH and ssdeep hashes over a
// directory of files for later pairwise comparison.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/klinvill/tlsh/internal/evaluation"
)

func main() {
	source := flag.String("source", "source_files/pg1342.txt", "text file to perturb")
	results := flag.String("results", "results", "directory for result CSVs")
	lines := flag.Int("lines", 500, "line count for the small experiment")
	iterations := flag.Int("iterations", 500, "permutations per experiment")
	collect := flag.String("collect", "", "hash all files in this directory instead of running experiments")
	flag.Parse()

	if *collect != "" {
		out := filepath.Join(*results, "hashes.csv")
		if err := evaluation.CollectHashes(*collect, out); err != nil {
			log.Fatal(err)
		}
		return
	}

	name := filepath.Base(*source)

	smallOut := filepath.Join(*results, "small_"+name+".csv")
	if err := evaluation.SmallExperiment(*source, smallOut, *lines, *iterations); err != nil {
		log.Fatal(err)
	}

	largeOut := filepath.Join(*results, "large_"+name+".csv")
	if err := evaluation.LargeExperiment(*source, largeOut, *iterations); err != nil {
		log.Fatal(err)
	}
}
