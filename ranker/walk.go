package ranker

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/pipeline"
)

// maxCachedCorpusSize is the largest corpus for which a walker keeps the
// cumulative transition table of every visited page around.
const maxCachedCorpusSize = 1024

// ctxCheckInterval is the number of steps a walker takes between context
// checks.
const ctxCheckInterval = 1 << 12

var (
	_ pipeline.Payload = (*walkPayload)(nil)

	walkPayloadPool = sync.Pool{
		New: func() any { return new(walkPayload) },
	}
)

// walkPayload describes a single random walk and, once the walk has run,
// carries its per-page visit counts.
type walkPayload struct {
	Steps  int
	Seed   int64
	Counts []int
}

func (p *walkPayload) Clone() pipeline.Payload {
	newp := walkPayloadPool.Get().(*walkPayload)
	newp.Steps = p.Steps
	newp.Seed = p.Seed
	newp.Counts = append(newp.Counts[:0], p.Counts...)
	return newp
}

// MarkAsProcessed keeps the capacity of the counts slice and puts the
// payload back to the pool.
func (p *walkPayload) MarkAsProcessed() {
	p.Steps = 0
	p.Seed = 0
	p.Counts = p.Counts[:0]
	walkPayloadPool.Put(p)
}

// walkSource emits one payload per walk length.
type walkSource struct {
	lengths  []int
	seed     int64
	numPages int
	next     int
}

func (s *walkSource) Error() error { return nil }

func (s *walkSource) Next(context.Context) bool {
	if s.next >= len(s.lengths) {
		return false
	}
	s.next++
	return true
}

func (s *walkSource) Payload() pipeline.Payload {
	i := s.next - 1
	p := walkPayloadPool.Get().(*walkPayload)
	p.Steps = s.lengths[i]
	p.Seed = s.seed + int64(i)*7919
	if cap(p.Counts) < s.numPages {
		p.Counts = make([]int, s.numPages)
	} else {
		p.Counts = p.Counts[:s.numPages]
		for j := range p.Counts {
			p.Counts[j] = 0
		}
	}
	return p
}

// countMerger sums the visit counts of every finished walk.
type countMerger struct {
	counts []int
	walks  int
}

func (s *countMerger) Consume(_ context.Context, p pipeline.Payload) error {
	payload := p.(*walkPayload)
	for i, c := range payload.Counts {
		s.counts[i] += c
	}
	s.walks++
	return nil
}

// walkRunner is the pipeline processor that performs the walk described by
// each incoming payload.
type walkRunner struct {
	c             *corpus.Corpus
	dampingFactor float64
}

func (r *walkRunner) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*walkPayload)
	w := newWalker(r.c, r.dampingFactor, payload.Seed)
	if err := w.walk(ctx, payload.Steps, payload.Counts); err != nil {
		return nil, err
	}
	return payload, nil
}

// walker simulates a single random surfer. A walker is not safe for
// concurrent use.
type walker struct {
	c             *corpus.Corpus
	dampingFactor float64
	rng           *rand.Rand

	weights []float64
	scratch []float64

	// tables holds the cumulative transition weights out of each page,
	// built lazily. It is nil for large corpora.
	tables [][]float64
}

func newWalker(c *corpus.Corpus, dampingFactor float64, seed int64) *walker {
	n := c.Size()
	w := &walker{
		c:             c,
		dampingFactor: dampingFactor,
		rng:           rand.New(rand.NewSource(seed)),
		weights:       make([]float64, n),
	}
	if n <= maxCachedCorpusSize {
		w.tables = make([][]float64, n)
	} else {
		w.scratch = make([]float64, n)
	}
	return w
}

// walk visits steps pages starting from a uniformly chosen page and adds
// one to the counter of every visited page, the starting page included.
func (w *walker) walk(ctx context.Context, steps int, counts []int) error {
	if steps <= 0 {
		return nil
	}
	cur := w.rng.Intn(w.c.Size())
	counts[cur]++
	for i := 1; i < steps; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		cur = w.next(cur)
		counts[cur]++
	}
	return nil
}

// next draws the page that follows cur using a binary search over the
// cumulative transition weights of cur.
func (w *walker) next(cur int) int {
	cumulative := w.cumulativeWeights(cur)
	last := len(cumulative) - 1
	r := w.rng.Float64() * cumulative[last]
	i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
	if i > last {
		i = last
	}
	return i
}

func (w *walker) cumulativeWeights(cur int) []float64 {
	if w.tables != nil && w.tables[cur] != nil {
		return w.tables[cur]
	}

	transitionWeights(w.c, cur, w.dampingFactor, w.weights)
	table := w.scratch
	if w.tables != nil {
		table = make([]float64, len(w.weights))
		w.tables[cur] = table
	}

	var total float64
	for i, weight := range w.weights {
		total += weight
		table[i] = total
	}
	return table
}

// splitWalks divides samples into walks walk lengths that differ by at most
// one.
func splitWalks(samples, walks int) []int {
	lengths := make([]int, walks)
	for i := range lengths {
		lengths[i] = samples / walks
		if i < samples%walks {
			lengths[i]++
		}
	}
	return lengths
}
