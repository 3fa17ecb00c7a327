package evaluation

import (
	"encoding/csv"
	"os"
	"runtime"
	"strconv"

	"github.com/glaslos/ssdeep"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/klinvill/tlsh/tlsh256"
)

// Entry is one previously collected file hash. BaseFile names the file this
// one is a variant of; distinct files are their own base.
type Entry struct {
	File       string
	BaseFile   string
	TLSHHash   string
	SSDeepHash string
}

// ComparisonEntry is the scored comparison of one file pair.
type ComparisonEntry struct {
	File1            string
	File2            string
	AreDistinct      bool
	TLSHDiff         int
	SSDeepSimilarity int
}

// LoadBinEntries reads a hand-curated binaries CSV with columns
// [file, similar-to, tlsh, ssdeep]. An empty similar-to column marks a
// distinct file.
func LoadBinEntries(path string) ([]Entry, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		base := rec[1]
		if base == "" {
			base = rec[0]
		}
		entries = append(entries, Entry{File: rec[0], BaseFile: base, TLSHHash: rec[2], SSDeepHash: rec[3]})
	}
	return entries, nil
}

// LoadVariantEntries reads a CSV of payload variants with columns
// [file, tlsh, ssdeep, base]. Every row names a base file, since each
// payload appears under multiple encodings.
func LoadVariantEntries(path string) ([]Entry, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, Entry{File: rec[0], BaseFile: rec[3], TLSHHash: rec[1], SSDeepHash: rec[2]})
	}
	return entries, nil
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluation: opening %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "evaluation: parsing %s", path)
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Drop the header row.
	return records[1:], nil
}

// Comparisons scores every pair within each entry group. Groups are not
// compared against each other. Pairs are scored in parallel.
func Comparisons(groups ...[]Entry) ([]ComparisonEntry, error) {
	total := 0
	for _, entries := range groups {
		total += len(entries) * (len(entries) - 1) / 2
	}
	results := make([]ComparisonEntry, total)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	offset := 0
	for _, entries := range groups {
		entries := entries
		base := offset
		n := len(entries)
		offset += n * (n - 1) / 2

		for i := 0; i < n-1; i++ {
			i := i
			// Flat index of pair (i, i+1) within this group.
			row := base + i*n - i*(i+1)/2
			g.Go(func() error {
				e1 := entries[i]
				for j := i + 1; j < n; j++ {
					e2 := entries[j]
					tlshDiff, err := tlsh256.Diff(e1.TLSHHash, e2.TLSHHash)
					if err != nil {
						return errors.Wrapf(err, "evaluation: comparing %s and %s", e1.File, e2.File)
					}
					ssdeepSim, err := ssdeep.Distance(e1.SSDeepHash, e2.SSDeepHash)
					if err != nil {
						return errors.Wrapf(err, "evaluation: comparing %s and %s", e1.File, e2.File)
					}
					results[row+j-i-1] = ComparisonEntry{
						File1:            e1.File,
						File2:            e2.File,
						AreDistinct:      e1.BaseFile != e2.BaseFile,
						TLSHDiff:         tlshDiff,
						SSDeepSimilarity: ssdeepSim,
					}
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteComparisons writes comparison results to a CSV file.
func WriteComparisons(path string, results []ComparisonEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "evaluation: creating comparisons csv")
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"File 1", "File 2", "Are Distinct", "TLSH Diff", "ssdeep Similarity"}); err != nil {
		return errors.Wrap(err, "evaluation: writing csv header")
	}
	for _, r := range results {
		row := []string{
			r.File1,
			r.File2,
			strconv.FormatBool(r.AreDistinct),
			strconv.Itoa(r.TLSHDiff),
			strconv.Itoa(r.SSDeepSimilarity),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "evaluation: writing comparison row")
		}
	}

	return writer.Error()
}
