package engine

import (
	"sort"
	"sync"
	"time"
)

// Report summarizes one engine run.
type Report struct {
	Operation string
	Duration  time.Duration

	// FilesWritten lists every output path actually written (empty on dry-run).
	FilesWritten []string

	// Skipped counts templates left alone by the incremental cache.
	Skipped int

	// Missing counts catalog entries without a translated value, per language.
	Missing map[string]int

	// Orphans counts catalog entries whose span no longer exists, per language.
	Orphans map[string]int
}

func newReport(operation string) *Report {
	return &Report{
		Operation: operation,
		Missing:   map[string]int{},
		Orphans:   map[string]int{},
	}
}

// Complete reports whether every selected language is fully translated.
func (r *Report) Complete() bool {
	for _, n := range r.Missing {
		if n > 0 {
			return false
		}
	}
	return true
}

// reportCollector merges per-language results under a lock, since language
// workers run concurrently.
type reportCollector struct {
	mu     sync.Mutex
	report *Report
}

func (c *reportCollector) addWritten(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.FilesWritten = append(c.report.FilesWritten, paths...)
}

func (c *reportCollector) addSkipped(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Skipped += n
}

func (c *reportCollector) setCounts(language string, missing, orphans int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Missing[language] = missing
	c.report.Orphans[language] = orphans
}

func (c *reportCollector) finish(start time.Time) *Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Strings(c.report.FilesWritten)
	c.report.Duration = time.Since(start)
	return c.report
}
