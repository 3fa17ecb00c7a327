// Package textalter perturbs text with small random edits so similarity
// hashes can be evaluated against a known amount of change. Edits are either
// word level (insert, delete, swap, substitute) or character level (replace
// or delete runs of a character).
package textalter

import (
	"math/rand"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// systemDict is the word list used when inserting new words.
const systemDict = "/usr/share/dict/words"

// AlteredText holds a mutable text buffer and applies random permutations to
// it. Not safe for concurrent use.
type AlteredText struct {
	text []rune
	rng  *rand.Rand
	dict []string
}

// New builds an AlteredText over text, drawing insertion words from the
// system dictionary.
func New(text string) (*AlteredText, error) {
	raw, err := os.ReadFile(systemDict)
	if err != nil {
		return nil, errors.Wrapf(err, "textalter: reading dictionary %s", systemDict)
	}
	return NewWithDict(text, strings.Split(strings.TrimSpace(string(raw)), "\n")), nil
}

// NewWithDict builds an AlteredText over text with an explicit dictionary.
func NewWithDict(text string, dict []string) *AlteredText {
	return &AlteredText{
		text: []rune(text),
		rng:  rand.New(rand.NewSource(rand.Int63())),
		dict: dict,
	}
}

// FromFile builds an AlteredText from the contents of a file.
func FromFile(path string) (*AlteredText, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "textalter: reading %s", path)
	}
	return New(string(raw))
}

// Text returns the current text.
func (a *AlteredText) Text() string {
	return string(a.text)
}

// Bytes returns the current text as bytes, ready for hashing.
func (a *AlteredText) Bytes() []byte {
	return []byte(string(a.text))
}

// Permute applies `times` randomly chosen permutations of any kind.
func (a *AlteredText) Permute(times int) {
	ops := []func(){
		a.insertWord,
		a.deleteWord,
		a.swapWords,
		a.substituteWords,
		a.replaceChars,
		a.deleteChars,
	}
	for i := 0; i < times; i++ {
		ops[a.rng.Intn(len(ops))]()
	}
}

// SmallPermute applies `times` character-level permutations.
func (a *AlteredText) SmallPermute(times int) {
	ops := []func(){
		a.replaceChars,
		a.deleteChars,
	}
	for i := 0; i < times; i++ {
		ops[a.rng.Intn(len(ops))]()
	}
}

// LargePermute applies `times` word-level permutations.
func (a *AlteredText) LargePermute(times int) {
	ops := []func(){
		a.insertWord,
		a.deleteWord,
		a.swapWords,
		a.substituteWords,
	}
	for i := 0; i < times; i++ {
		ops[a.rng.Intn(len(ops))]()
	}
}

// Apostrophes and dashes count as part of a word (they're, semi-short).
func isValidWordChar(c rune) bool {
	switch c {
	case '\'', '-':
		return true
	}
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// expandWord finds the word containing index i. The returned range is
// inclusive on the left and exclusive on the right.
func (a *AlteredText) expandWord(i int) (start, end int, ok bool) {
	if !isValidWordChar(a.text[i]) {
		return 0, 0, false
	}
	start, end = i, i+1
	for start > 0 && isValidWordChar(a.text[start-1]) {
		start--
	}
	for end < len(a.text) && isValidWordChar(a.text[end]) {
		end++
	}
	return start, end, true
}

// pickRandomWord samples indices until one lands inside a word.
func (a *AlteredText) pickRandomWord() (start, end int) {
	for {
		i := a.rng.Intn(len(a.text))
		if s, e, ok := a.expandWord(i); ok {
			return s, e
		}
	}
}

// pickRandomChar samples until it finds a word character, so character edits
// only touch characters inside words. Deleting every character of a
// one-letter word still removes that word.
func (a *AlteredText) pickRandomChar() rune {
	for {
		c := a.text[a.rng.Intn(len(a.text))]
		if isValidWordChar(c) {
			return c
		}
	}
}

func (a *AlteredText) insertWord() {
	start, end := a.pickRandomWord()

	word := a.dict[a.rng.Intn(len(a.dict))]

	// Insert before or after the picked word, padded with a space so it
	// reads naturally.
	if a.rng.Intn(2) == 0 {
		a.insertWordAt(word+" ", start)
	} else {
		a.insertWordAt(" "+word, end)
	}
}

func (a *AlteredText) insertWordAt(word string, i int) {
	a.text = slices.Insert(a.text, i, []rune(word)...)
}

func (a *AlteredText) deleteWord() {
	start, end := a.pickRandomWord()
	a.deleteWordAt(start, end)
}

func (a *AlteredText) deleteWordAt(start, end int) {
	a.text = slices.Delete(a.text, start, end)
}

func (a *AlteredText) swapWords() {
	start1, end1 := a.pickRandomWord()
	start2, end2 := a.pickRandomWord()
	a.swapWordsAt(start1, end1, start2, end2)
}

func (a *AlteredText) swapWordsAt(start1, end1, start2, end2 int) {
	// Picking the same word twice is a no-op.
	if start1 == start2 {
		return
	}

	len1 := end1 - start1
	len2 := end2 - start2

	longerStart, longerEnd, shorterStart, shorterEnd := start2, end2, start1, end1
	if len1 > len2 {
		longerStart, longerEnd, shorterStart, shorterEnd = start1, end1, start2, end2
	}
	shorterLen := shorterEnd - shorterStart
	longerLen := longerEnd - longerStart

	// Swap in place up through the shorter word, then move the longer
	// word's tail over to the shorter word's position.
	for i := 0; i < shorterLen; i++ {
		a.text[shorterStart+i], a.text[longerStart+i] = a.text[longerStart+i], a.text[shorterStart+i]
	}

	removed := slices.Clone(a.text[longerStart+shorterLen : longerEnd])
	a.text = slices.Delete(a.text, longerStart+shorterLen, longerEnd)

	// If the removed tail sat before the insertion point, the removal
	// shifted the insertion index.
	adjust := 0
	if longerStart < shorterStart {
		adjust = longerLen - shorterLen
	}
	a.text = slices.Insert(a.text, shorterEnd-adjust, removed...)
}

func (a *AlteredText) substituteWords() {
	start1, end1 := a.pickRandomWord()
	start2, end2 := a.pickRandomWord()
	a.substituteWordsAt(start1, end1, start2, end2)
}

// substituteWordsAt replaces the occurrence at (start2, end2) with the word
// at (start1, end1).
func (a *AlteredText) substituteWordsAt(start1, end1, start2, end2 int) {
	if start1 == start2 {
		return
	}

	len1 := end1 - start1
	len2 := end2 - start2

	for i := 0; i < min(len1, len2); i++ {
		a.text[start2+i] = a.text[start1+i]
	}

	if len1 > len2 {
		// Copy the tail first: inserting shifts the source word when it
		// lies after the target.
		tail := slices.Clone(a.text[start1+len2 : end1])
		a.text = slices.Insert(a.text, start2+len2, tail...)
	} else {
		a.text = slices.Delete(a.text, start2+len1, start2+len2)
	}
}

// replaceChars replaces up to 10 occurrences of a random word character with
// another, starting at a random offset.
func (a *AlteredText) replaceChars() {
	target := a.pickRandomChar()
	source := a.pickRandomChar()
	start := a.rng.Intn(len(a.text))
	a.replaceCharsAt(target, source, start, 10)
}

// replaceCharsAt replaces target with source for up to `times` occurrences,
// scanning from start and wrapping to the beginning.
func (a *AlteredText) replaceCharsAt(target, source rune, start, times int) {
	toReplace := times
	if toReplace <= 0 {
		return
	}

	for i := start; i < len(a.text); i++ {
		if a.text[i] == target {
			a.text[i] = source
			toReplace--
			if toReplace <= 0 {
				return
			}
		}
	}
	for j := 0; j < start; j++ {
		if a.text[j] == target {
			a.text[j] = source
			toReplace--
			if toReplace <= 0 {
				return
			}
		}
	}
}

// deleteChars deletes up to 10 occurrences of a random word character,
// starting at a random offset.
func (a *AlteredText) deleteChars() {
	target := a.pickRandomChar()
	start := a.rng.Intn(len(a.text))
	a.deleteCharsAt(target, start, 10)
}

// deleteCharsAt deletes up to `times` occurrences of target, scanning from
// start and wrapping to the beginning.
func (a *AlteredText) deleteCharsAt(target rune, start, times int) {
	if times <= 0 {
		return
	}

	toDelete := make([]int, 0, times)
	for i := start; i < len(a.text) && len(toDelete) < times; i++ {
		if a.text[i] == target {
			toDelete = append(toDelete, i)
		}
	}
	for j := 0; j < start && len(toDelete) < times; j++ {
		if a.text[j] == target {
			toDelete = append(toDelete, j)
		}
	}

	// Delete back to front so earlier deletions don't shift later indices.
	slices.Sort(toDelete)
	for i := len(toDelete) - 1; i >= 0; i-- {
		a.text = slices.Delete(a.text, toDelete[i], toDelete[i]+1)
	}
}
