// Package evaluation measures how TLSH digest distances respond to known
// amounts of change, using ssdeep as a comparison baseline. It collects
// hashes over file trees, perturbs texts one edit at a time, and compares
// previously collected hashes pairwise, writing each result set to CSV.
package evaluation

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"

	"github.com/glaslos/ssdeep"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/klinvill/tlsh/tlsh256"
)

// CollectHashes hashes every regular file directly under sourceDir with TLSH
// and ssdeep and appends a row per file to resultsCSV. The header row is only
// written when the CSV does not exist yet, so repeated runs over different
// directories accumulate into one file. Unreadable or unhashable files are
// logged and skipped.
func CollectHashes(sourceDir, resultsCSV string) error {
	_, statErr := os.Stat(resultsCSV)
	writeHeader := os.IsNotExist(statErr)

	out, err := os.OpenFile(resultsCSV, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "evaluation: opening results csv")
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if writeHeader {
		if err := writer.Write([]string{"File", "TLSH Hash", "ssdeep Hash"}); err != nil {
			return errors.Wrap(err, "evaluation: writing csv header")
		}
	}

	dirEntries, err := os.ReadDir(sourceDir)
	if err != nil {
		return errors.Wrapf(err, "evaluation: reading %s", sourceDir)
	}

	bar := progressbar.Default(int64(len(dirEntries)))
	for _, entry := range dirEntries {
		bar.Add(1)
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(sourceDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("couldn't read file %s: %v", path, err)
			continue
		}

		ssdeepHash, err := ssdeep.FuzzyBytes(data)
		if err != nil {
			log.Printf("couldn't ssdeep-hash %s: %v", path, err)
			continue
		}

		if err := writer.Write([]string{path, tlsh256.Hash(data), ssdeepHash}); err != nil {
			return errors.Wrapf(err, "evaluation: writing row for %s", path)
		}
	}

	return writer.Error()
}
