package ngram

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/logram/internal/debug"
	"github.com/standardbeagle/logram/internal/logformat"
	"github.com/standardbeagle/logram/internal/metrics"
)

// chunkLines returns the line slice [desc.StartLine, desc.EndLine] from
// the already-read file content.
func chunkLines(lines []string, desc ChunkDescriptor) []string {
	return lines[desc.StartLine : desc.EndLine+1]
}

// seedState tokenizes a chunk's boundary line, if it has one, to derive
// the LineState the chunk's first real line should carry as trailing
// context.
func seedState(text string, has bool, lf logformat.LogFormat) (LineState, error) {
	if !has {
		return LineState{}, nil
	}
	tokens, err := logformat.Tokenize(text, lf)
	if err != nil {
		return LineState{}, err
	}
	n := len(tokens)
	if n == 0 {
		return LineState{}, nil
	}
	st := LineState{Prev1: tokens[n-1], HasP1: true}
	if n >= 2 {
		st.Prev2, st.HasP2 = tokens[n-2], true
	}
	return st, nil
}

// runChunk scans one chunk's lines into its own local Dictionary and
// token set, returning them for the caller to merge.
func runChunk(lines []string, desc ChunkDescriptor, lf logformat.LogFormat, stats *metrics.RunStats) (*Dictionary, map[string]struct{}, error) {
	dict := NewDictionary()
	tokenSet := make(map[string]struct{})
	addToken := func(t string) {
		if _, ok := tokenSet[t]; !ok {
			tokenSet[t] = struct{}{}
		}
	}

	state, err := seedState(desc.PrevLineText, desc.HasPrevLine, lf)
	if err != nil {
		return nil, nil, err
	}

	body := chunkLines(lines, desc)
	for i, line := range body {
		var nextLine string
		hasNext := false
		if i+1 < len(body) {
			nextLine, hasNext = body[i+1], true
		} else if desc.HasNextLine {
			nextLine, hasNext = desc.NextLineText, true
		}

		state, err = ProcessLine(line, nextLine, hasNext, lf, state, dict, addToken)
		if err != nil {
			return nil, nil, err
		}
		if stats != nil {
			stats.LinesScanned.Add(1)
		}
	}

	return dict, tokenSet, nil
}

// RunSerial scans every line in a single pass on the calling goroutine,
// with no chunking at all. This is the mode selected when num_threads ==
// 0: unlike RunPartitioned/RunShared, whose token order follows map
// iteration order, RunSerial appends each newly-seen token to
// Dictionary.Tokens in the exact order it is first encountered in the
// file.
func RunSerial(lines []string, lf logformat.LogFormat, stats *metrics.RunStats) (*Dictionary, error) {
	debug.LogNgram("serial run: %d lines, format=%s", len(lines), lf.Name)
	dict := NewDictionary()
	seen := make(map[string]struct{})
	addToken := func(t string) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			dict.Tokens = append(dict.Tokens, t)
		}
	}

	var state LineState
	for i, line := range lines {
		var nextLine string
		hasNext := false
		if i+1 < len(lines) {
			nextLine, hasNext = lines[i+1], true
		}
		var err error
		state, err = ProcessLine(line, nextLine, hasNext, lf, state, dict, addToken)
		if err != nil {
			return nil, err
		}
		if stats != nil {
			stats.LinesScanned.Add(1)
		}
	}

	if stats != nil {
		stats.ChunksPlanned.Add(1)
		stats.PairsFound.Add(uint64(len(dict.Pairs)))
		stats.TriplesFound.Add(uint64(len(dict.Triples)))
		stats.TokensFound.Add(uint64(len(dict.Tokens)))
	}
	return dict, nil
}

// RunPartitioned implements the partitioned-then-merged aggregation
// strategy: each chunk is scanned into its own local counters by a
// worker-pool goroutine, and the local results are merged into one
// Dictionary single-threaded once every worker has finished. This is the
// variant selected when the aggregation configuration's SingleMap field
// is true.
func RunPartitioned(lines []string, chunks []ChunkDescriptor, lf logformat.LogFormat, stats *metrics.RunStats) (*Dictionary, error) {
	debug.LogNgram("partitioned run: %d lines across %d chunks, format=%s", len(lines), len(chunks), lf.Name)
	partials := make([]*Dictionary, len(chunks))
	tokenSets := make([]map[string]struct{}, len(chunks))

	g := new(errgroup.Group)
	for i, desc := range chunks {
		i, desc := i, desc
		g.Go(func() error {
			dict, tokens, err := runChunk(lines, desc, lf, stats)
			if err != nil {
				return err
			}
			partials[i] = dict
			tokenSets[i] = tokens
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewDictionary()
	seen := make(map[string]struct{})
	for i, dict := range partials {
		for k, v := range dict.Pairs {
			merged.Pairs[k] += v
		}
		for k, v := range dict.Triples {
			merged.Triples[k] += v
		}
		for t := range tokenSets[i] {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				merged.Tokens = append(merged.Tokens, t)
			}
		}
	}
	if stats != nil {
		stats.ChunksPlanned.Add(uint64(len(chunks)))
		stats.PairsFound.Add(uint64(len(merged.Pairs)))
		stats.TriplesFound.Add(uint64(len(merged.Triples)))
		stats.TokensFound.Add(uint64(len(merged.Tokens)))
	}
	return merged, nil
}

// shardedCounter is a lock-minimized concurrent counter map: keys are
// routed to one of a fixed number of shards by an xxhash digest, and each
// shard is a plain map guarded by its own mutex. This is a direct
// adaptation of a sync.Map-plus-atomic-counter idiom to a sharded-mutex
// form, since pair/triple keys here need read-modify-write increments
// rather than the simpler store-once semantics sync.Map is built for.
type shardedCounter struct {
	shards [numShards]struct {
		mu sync.Mutex
		m  map[string]int
	}
}

const numShards = 32

func newShardedCounter() *shardedCounter {
	sc := &shardedCounter{}
	for i := range sc.shards {
		sc.shards[i].m = make(map[string]int)
	}
	return sc
}

func (sc *shardedCounter) shardFor(key string) int {
	return int(xxhash.Sum64String(key) % numShards)
}

func (sc *shardedCounter) Incr(key string) {
	sc.IncrBy(key, 1)
}

func (sc *shardedCounter) IncrBy(key string, delta int) {
	idx := sc.shardFor(key)
	shard := &sc.shards[idx]
	shard.mu.Lock()
	shard.m[key] += delta
	shard.mu.Unlock()
}

func (sc *shardedCounter) Snapshot() map[string]int {
	out := make(map[string]int)
	for i := range sc.shards {
		shard := &sc.shards[i]
		shard.mu.Lock()
		for k, v := range shard.m {
			out[k] = v
		}
		shard.mu.Unlock()
	}
	return out
}

// concurrentTokenSet is a sync.Map-backed set, safe for concurrent Add
// from every chunk worker.
type concurrentTokenSet struct {
	m sync.Map // map[string]struct{}
}

func (s *concurrentTokenSet) Add(t string) {
	s.m.Store(t, struct{}{})
}

func (s *concurrentTokenSet) Slice() []string {
	out := make([]string, 0)
	s.m.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	return out
}

// RunShared implements the shared-concurrent aggregation strategy: every
// chunk worker increments counters in one set of shared, shard-locked
// maps rather than building a local Dictionary to merge afterward. This
// is the variant selected when the aggregation configuration's
// SingleMap field is false, and produces identical counts to
// RunPartitioned for the same input.
func RunShared(lines []string, chunks []ChunkDescriptor, lf logformat.LogFormat, stats *metrics.RunStats) (*Dictionary, error) {
	debug.LogNgram("shared-concurrent run: %d lines across %d chunks, format=%s", len(lines), len(chunks), lf.Name)
	pairs := newShardedCounter()
	triples := newShardedCounter()
	tokens := &concurrentTokenSet{}

	g := new(errgroup.Group)
	for _, desc := range chunks {
		desc := desc
		g.Go(func() error {
			addToken := tokens.Add

			state, err := seedState(desc.PrevLineText, desc.HasPrevLine, lf)
			if err != nil {
				return err
			}

			body := chunkLines(lines, desc)
			for i, line := range body {
				var nextLine string
				hasNext := false
				if i+1 < len(body) {
					nextLine, hasNext = body[i+1], true
				} else if desc.HasNextLine {
					nextLine, hasNext = desc.NextLineText, true
				}

				lineDict := &Dictionary{Pairs: map[string]int{}, Triples: map[string]int{}}
				state, err = ProcessLine(line, nextLine, hasNext, lf, state, lineDict, addToken)
				if err != nil {
					return err
				}
				for k, v := range lineDict.Pairs {
					pairs.IncrBy(k, v)
				}
				for k, v := range lineDict.Triples {
					triples.IncrBy(k, v)
				}
				if stats != nil {
					stats.LinesScanned.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Dictionary{
		Pairs:   pairs.Snapshot(),
		Triples: triples.Snapshot(),
		Tokens:  tokens.Slice(),
	}
	if stats != nil {
		stats.ChunksPlanned.Add(uint64(len(chunks)))
		stats.PairsFound.Add(uint64(len(merged.Pairs)))
		stats.TriplesFound.Add(uint64(len(merged.Triples)))
		stats.TokensFound.Add(uint64(len(merged.Tokens)))
	}
	return merged, nil
}
