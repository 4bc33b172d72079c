// Package report accumulates run counters and renders the run summary.
package report

// Counters is a read-only snapshot of one scope.
type Counters struct {
	FilesProcessed int
	Found          int
	Success        int
	Error          int
	ParseFailures  int
}

type scope struct {
	found         int
	success       int
	errors        int
	parseFailures int
}

func (s *scope) snapshot() Counters {
	return Counters{
		Found:         s.found,
		Success:       s.success,
		Error:         s.errors,
		ParseFailures: s.parseFailures,
	}
}

// Aggregator holds the global counters and one scope per file, in the order
// files were first seen. Counters only ever grow.
type Aggregator struct {
	files  int
	global scope
	scopes map[string]*scope
	order  []string
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		scopes: make(map[string]*scope),
	}
}

func (a *Aggregator) file(name string) *scope {
	s, ok := a.scopes[name]
	if !ok {
		s = &scope{}
		a.scopes[name] = s
		a.order = append(a.order, name)
	}
	return s
}

func (a *Aggregator) RecordFilesProcessed() {
	a.files++
}

// Touch registers file so it shows up in the summary even if nothing is
// found in it.
func (a *Aggregator) Touch(file string) {
	a.file(file)
}

func (a *Aggregator) RecordFound(file string, n int) {
	if n <= 0 {
		a.file(file)
		return
	}
	a.global.found += n
	a.file(file).found += n
}

func (a *Aggregator) RecordOutcome(file string, success bool) {
	s := a.file(file)
	if success {
		a.global.success++
		s.success++
		return
	}
	a.global.errors++
	s.errors++
}

func (a *Aggregator) RecordParseFailure(file string) {
	a.global.parseFailures++
	a.file(file).parseFailures++
}

func (a *Aggregator) Global() Counters {
	c := a.global.snapshot()
	c.FilesProcessed = a.files
	return c
}

func (a *Aggregator) File(file string) Counters {
	s, ok := a.scopes[file]
	if !ok {
		return Counters{}
	}
	return s.snapshot()
}

// Files lists the file scopes in first-seen order.
func (a *Aggregator) Files() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Aggregator) Report(sink Sink) {
	g := a.Global()
	sink.Success("Process complete!")
	sink.Success("Files parsed:       %d", g.FilesProcessed)
	sink.Success("Successful fetches: %d", g.Success)
	sink.Success("Errors encountered: %d", g.Error)
	if g.ParseFailures > 0 {
		sink.Success("Parse failures:     %d", g.ParseFailures)
	}
	sink.Success("")
	sink.Success("File Summaries:")
	sink.Success("===================================")

	for _, name := range a.order {
		c := a.scopes[name].snapshot()
		sink.Success("%s:", name)
		sink.Success("Images found:       %d", c.Found)
		sink.Success("Successful fetches: %d", c.Success)
		sink.Success("Errors encountered: %d", c.Error)
		if c.ParseFailures > 0 {
			sink.Success("Parse failures:     %d", c.ParseFailures)
		}
	}
}
