package ngram

import (
	"bufio"
	"os"

	logerrors "github.com/standardbeagle/logram/internal/errors"
	"github.com/standardbeagle/logram/internal/logformat"
	"github.com/standardbeagle/logram/internal/metrics"
)

// readAllLines loads every line of path into memory. Chunk workers index
// into this slice by line number rather than re-opening and re-scanning
// the file per chunk.
func readAllLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, logerrors.NewIOError("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, logerrors.NewIOError("scan", path, err)
	}
	return lines, nil
}

// ParseRaw scans rawFile under the given LogFormat and builds its
// pair/triple n-gram dictionary.
//
// When numThreads == 0, the file is scanned serially on the calling
// goroutine by RunSerial, and Dictionary.Tokens is guaranteed to hold
// first-occurrence order. When numThreads >= 1, the file is split into up
// to numThreads chunks and run through one of two concurrent aggregation
// strategies: partitioned-then-merged when singleMap is true, or
// shared-concurrent when singleMap is false. Both concurrent strategies
// produce identical Pairs/Triples counts for the same input, but
// Dictionary.Tokens ordering is unspecified under either — it follows the
// iteration order of each chunk's token map for RunPartitioned, and of the
// shared sync.Map for RunShared.
func ParseRaw(rawFile string, lf logformat.LogFormat, singleMap bool, numThreads int, stats *metrics.RunStats) (*Dictionary, error) {
	lines, err := readAllLines(rawFile)
	if err != nil {
		return nil, err
	}
	numLines := len(lines)
	if numLines == 0 {
		return NewDictionary(), nil
	}

	if numThreads <= 0 {
		return RunSerial(lines, lf, stats)
	}

	chunks := PlanChunks(lines, numThreads)

	if singleMap {
		return RunPartitioned(lines, chunks, lf, stats)
	}
	return RunShared(lines, chunks, lf, stats)
}
