package cache

import (
	"fmt"
	"io"
)

// WriteHistogram writes one row per set index, each carrying the summed
// hit and eviction counts and the number of ways currently occupied. The
// caller chooses when to write it; PerformanceModel.Finalize does not call
// it.
func WriteHistogram(w io.Writer, lvl LevelBackend) error {
	if _, err := fmt.Fprintln(w, "index,ways-used,hits,evictions"); err != nil {
		return err
	}
	for index := 0; index < lvl.Blocks(); index++ {
		hits, evictions, waysUsed := lvl.Stats(index)
		if _, err := fmt.Fprintf(w, "%#x,%d,%d,%d\n", index, waysUsed, hits, evictions); err != nil {
			return err
		}
	}
	return nil
}
