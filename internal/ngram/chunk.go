package ngram

// ChunkDescriptor describes one contiguous, inclusive line range
// [StartLine, EndLine] of a log file a single worker will scan, plus the boundary line text
// needed to stitch pair/triple windows across chunk edges: the last line
// of the previous chunk (for seeding this chunk's prev1/prev2 state) and
// the first line of the next chunk (for this chunk's lookahead on its own
// final line).
type ChunkDescriptor struct {
	ID           int
	StartLine    int // inclusive, 0-indexed
	EndLine      int // inclusive, 0-indexed
	PrevLineText string
	NextLineText string
	HasPrevLine  bool
	HasNextLine  bool
}

// PlanChunks divides lines into at most numThreads contiguous chunks of
// ceil(len(lines)/numThreads) lines each, attaching the boundary line
// text each chunk needs to stitch its n-gram windows across the cut. If
// numThreads exceeds len(lines), it is clamped down so no chunk is ever
// empty.
func PlanChunks(lines []string, numThreads int) []ChunkDescriptor {
	numLines := len(lines)
	if numLines == 0 {
		return nil
	}
	threads := numThreads
	if threads <= 0 {
		threads = 1
	}
	if threads > numLines {
		threads = numLines
	}

	chunkSize := (numLines + threads - 1) / threads

	descriptors := make([]ChunkDescriptor, 0, threads)
	for i := 0; i < threads; i++ {
		start := i * chunkSize
		if start >= numLines {
			break
		}
		finish := (i+1)*chunkSize - 1
		if finish > numLines-1 {
			finish = numLines - 1
		}

		desc := ChunkDescriptor{ID: i, StartLine: start, EndLine: finish}

		if start > 0 {
			desc.PrevLineText, desc.HasPrevLine = lines[start-1], true
		}
		if finish+1 < numLines {
			desc.NextLineText, desc.HasNextLine = lines[finish+1], true
		}

		descriptors = append(descriptors, desc)
	}
	return descriptors
}
