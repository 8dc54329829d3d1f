package ioartifact

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnunite/pkg/unite"
)

// maxLine limits the length of one line of taxonomy or sequence data.
const maxLine = 16 * 1024 * 1024

// iupacDNA contains nucleotide codes allowed in sequence data.
const iupacDNA = "ACGTRYSWKMBDHVNacgtryswkmbdhvn"

// taxonomyHeaders are first-column names of taxonomy files with a header.
var taxonomyHeaders = map[string]struct{}{
	"feature id": {},
	"feature-id": {},
	"featureid":  {},
	"id":         {},
}

var errEmpty = errors.New("file has no records")

// validateFile checks the file against format and returns the number of
// records.
func validateFile(path string, format unite.Format) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, StoreError(path, err)
	}
	defer f.Close()

	var count int
	switch format {
	case unite.TaxonomyFormat:
		count, err = countTaxonomy(f)
	case unite.SequenceFormat:
		count, err = countSequences(f)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return 0, ValidationError(path, format, err)
	}
	return count, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return sc
}

// countTaxonomy reads headerless tab-separated taxonomy: a feature id and
// a taxonomy string on each line.
func countTaxonomy(r io.Reader) (int, error) {
	ids := make(map[string]int)
	sc := newScanner(r)
	var lineNum, count int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		id := strings.TrimSpace(fields[0])
		if count == 0 {
			if _, ok := taxonomyHeaders[strings.ToLower(id)]; ok {
				return 0, fmt.Errorf("line %d: unexpected header %q",
					lineNum, gnlib.FixUtf8(id))
			}
		}
		if len(fields) < 2 {
			return 0, fmt.Errorf("line %d: expected at least 2 tab-separated fields, got %d",
				lineNum, len(fields))
		}
		if id == "" {
			return 0, fmt.Errorf("line %d: empty feature id", lineNum)
		}
		if prev, ok := ids[id]; ok {
			return 0, fmt.Errorf("line %d: feature id %q repeats line %d",
				lineNum, gnlib.FixUtf8(id), prev)
		}
		ids[id] = lineNum
		count++
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errEmpty
	}
	return count, nil
}

// countSequences reads FASTA with DNA sequences in upper, lower or mixed
// case. Sequences may span several lines.
func countSequences(r io.Reader) (int, error) {
	ids := make(map[string]int)
	sc := newScanner(r)
	var lineNum, count int
	var id string
	var seqLen int

	closeRecord := func() error {
		if count > 0 && seqLen == 0 {
			return fmt.Errorf("record %q has no sequence", gnlib.FixUtf8(id))
		}
		return nil
	}

	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			if err := closeRecord(); err != nil {
				return 0, err
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return 0, fmt.Errorf("line %d: empty sequence id", lineNum)
			}
			id = fields[0]
			if prev, ok := ids[id]; ok {
				return 0, fmt.Errorf("line %d: sequence id %q repeats line %d",
					lineNum, gnlib.FixUtf8(id), prev)
			}
			ids[id] = lineNum
			seqLen = 0
			count++
			continue
		}

		if count == 0 {
			return 0, fmt.Errorf("line %d: sequence data before the first header",
				lineNum)
		}
		if i := strings.IndexFunc(line, notDNA); i >= 0 {
			return 0, fmt.Errorf("line %d: invalid character %q in sequence %q",
				lineNum, gnlib.FixUtf8(line[i:i+1]), gnlib.FixUtf8(id))
		}
		seqLen += len(line)
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errEmpty
	}
	if err := closeRecord(); err != nil {
		return 0, err
	}
	return count, nil
}

func notDNA(r rune) bool {
	return !strings.ContainsRune(iupacDNA, r)
}
