/*
Formats rank distributions for display and renders ranked corpora as
graphviz diagrams.
*/
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Ahmed-Sermani/pagerank/ranker"
)

// Write prints title followed by one line per page of dist, sorted by page.
func Write(w io.Writer, title string, dist ranker.Distribution) error {
	bw := bufio.NewWriter(w)
	writeTable(bw, title, dist)
	return bw.Flush()
}

// WriteComparison prints the sampled and iterated results one after the
// other followed by the largest per-page difference between them.
func WriteComparison(w io.Writer, sampled, iterated *ranker.Result) error {
	bw := bufio.NewWriter(w)
	writeTable(bw, SamplingTitle(sampled.Samples), sampled.Ranks)
	writeTable(bw, IterationTitle(), iterated.Ranks)
	fmt.Fprintf(bw, "Maximum difference: %.4f\n", sampled.Ranks.MaxAbsDiff(iterated.Ranks))
	return bw.Flush()
}

// SamplingTitle returns the heading of a sampling result table.
func SamplingTitle(samples int) string {
	return fmt.Sprintf("PageRank Results from Sampling (n = %d)", samples)
}

// IterationTitle returns the heading of an iteration result table.
func IterationTitle() string {
	return "PageRank Results from Iteration"
}

func writeTable(w io.Writer, title string, dist ranker.Distribution) {
	fmt.Fprintln(w, title)
	for _, p := range dist.Pages() {
		fmt.Fprintf(w, "  %s: %.4f\n", p, dist[p])
	}
}
