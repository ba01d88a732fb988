package ripper

import (
	"teleripper/pkg/media"
	"teleripper/pkg/ui"
)

// Counts holds one counter per media category, indexed by Category.Index.
type Counts [media.NumCategories]int

// Get returns the counter for c.
func (c Counts) Get(category media.Category) int {
	if i := category.Index(); i >= 0 {
		return c[i]
	}
	return 0
}

func (c Counts) add(category media.Category) Counts {
	if i := category.Index(); i >= 0 {
		c[i]++
	}
	return c
}

// Sum adds up every category.
func (c Counts) Sum() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Result is the outcome of one download run. Every step of the run returns
// a new Result; the zero value is an empty run.
type Result struct {
	// Dir is the channel directory files were saved under.
	Dir string
	// Matched counts attachments that passed the type filter.
	Matched Counts
	// Downloaded counts files written during this run.
	Downloaded Counts
	// Existing counts attachments skipped because the file was already there.
	Existing int
	// Failed counts attachments whose transfer failed.
	Failed int
}

func (r Result) matched(c media.Category) Result {
	r.Matched = r.Matched.add(c)
	return r
}

func (r Result) downloaded(c media.Category) Result {
	r.Downloaded = r.Downloaded.add(c)
	return r
}

func (r Result) existing() Result {
	r.Existing++
	return r
}

func (r Result) failed() Result {
	r.Failed++
	return r
}

// Total is the number of files written during this run.
func (r Result) Total() int {
	return r.Downloaded.Sum()
}

// Empty reports whether no attachment matched at all.
func (r Result) Empty() bool {
	return r.Matched.Sum() == 0
}

// Summary converts r for display.
func (r Result) Summary() ui.DownloadSummary {
	rows := make([]ui.SummaryRow, 0, len(media.Categories))
	for _, c := range media.Categories {
		rows = append(rows, ui.SummaryRow{Label: string(c), Count: r.Downloaded.Get(c)})
	}
	return ui.DownloadSummary{
		Rows:     rows,
		Total:    r.Total(),
		Existing: r.Existing,
		Failed:   r.Failed,
		Dir:      r.Dir,
		Empty:    r.Empty(),
	}
}
