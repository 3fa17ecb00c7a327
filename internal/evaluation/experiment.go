package evaluation

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/glaslos/ssdeep"
	"github.com/pkg/errors"

	"github.com/klinvill/tlsh/internal/textalter"
	"github.com/klinvill/tlsh/tlsh256"
)

// SmallExperiment applies one character-level permutation per iteration to
// the first `lines` lines of sourceFile (the whole file when lines <= 0) and
// records the TLSH distance and ssdeep similarity against the unmodified base
// text after each edit.
func SmallExperiment(sourceFile, resultsCSV string, lines, iterations int) error {
	raw, err := os.ReadFile(sourceFile)
	if err != nil {
		return errors.Wrapf(err, "evaluation: reading %s", sourceFile)
	}

	text := string(raw)
	if lines > 0 {
		split := strings.Split(text, "\n")
		if lines < len(split) {
			split = split[:lines]
		}
		text = strings.Join(split, "\n")
	}

	altered, err := textalter.New(text)
	if err != nil {
		return err
	}

	return runExperiment(altered, resultsCSV, iterations, (*textalter.AlteredText).SmallPermute)
}

// LargeExperiment is SmallExperiment with word-level permutations over the
// whole source file.
func LargeExperiment(sourceFile, resultsCSV string, iterations int) error {
	altered, err := textalter.FromFile(sourceFile)
	if err != nil {
		return err
	}

	return runExperiment(altered, resultsCSV, iterations, (*textalter.AlteredText).LargePermute)
}

func runExperiment(altered *textalter.AlteredText, resultsCSV string, iterations int, permute func(*textalter.AlteredText, int)) error {
	out, err := os.Create(resultsCSV)
	if err != nil {
		return errors.Wrap(err, "evaluation: creating results csv")
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"Iteration", "TLSH Diff", "ssdeep Similarity"}); err != nil {
		return errors.Wrap(err, "evaluation: writing csv header")
	}

	base := altered.Bytes()
	baseTLSH := tlsh256.Hash(base)
	baseSSDeep, err := ssdeep.FuzzyBytes(base)
	if err != nil {
		return errors.Wrap(err, "evaluation: ssdeep of base text")
	}

	for i := 0; i < iterations; i++ {
		// Permute once per iteration so the recorded curve tracks the
		// cumulative number of edits.
		permute(altered, 1)
		data := altered.Bytes()

		newTLSH := tlsh256.Hash(data)
		newSSDeep, err := ssdeep.FuzzyBytes(data)
		if err != nil {
			return errors.Wrapf(err, "evaluation: ssdeep at iteration %d", i)
		}

		tlshDiff, err := tlsh256.Diff(baseTLSH, newTLSH)
		if err != nil {
			return errors.Wrapf(err, "evaluation: tlsh diff at iteration %d", i)
		}
		ssdeepSim, err := ssdeep.Distance(baseSSDeep, newSSDeep)
		if err != nil {
			return errors.Wrapf(err, "evaluation: ssdeep distance at iteration %d", i)
		}

		log.Printf("iteration: %d, TLSH diff: %d, ssdeep similarity: %d", i, tlshDiff, ssdeepSim)
		if err := writer.Write([]string{strconv.Itoa(i), strconv.Itoa(tlshDiff), strconv.Itoa(ssdeepSim)}); err != nil {
			return errors.Wrapf(err, "evaluation: writing row %d", i)
		}
	}

	return writer.Error()
}
