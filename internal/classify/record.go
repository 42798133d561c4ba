package classify

import "github.com/errorck/errorck/internal/ast"

// Site is an optional (file, line, column) attached to an emitted record;
// it is only ever populated for AssignedNotRead, where it names the final
// source expression whose value was copied but never read.
type Site struct {
	Filename string
	Line     int
	Column   int
}

func siteOf(loc ast.Location) Site {
	return Site{Filename: loc.Filename, Line: loc.Line, Column: loc.Column}
}

// Record is one classified watched call, ready for the sink.
type Record struct {
	Name       string
	Filename   string
	Line       int
	Column     int
	Category   Category
	Assignment *Site // nil unless Category == AssignedNotRead
}

func (r Record) dedupKey() [5]string {
	return [5]string{r.Name, r.Filename, itoa(r.Line), itoa(r.Column), r.Category.String()}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Emitter deduplicates records in-memory on (name, file, line, column,
// category) before handing them to a sink. One Emitter is scoped to a
// single translation unit, matching the engine's lifecycle invariant that
// all analysis state is discarded when the unit finishes.
type Emitter struct {
	seen    map[[5]string]bool
	records []Record
}

// NewEmitter returns an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{seen: make(map[[5]string]bool)}
}

// Emit records one classified call, dropping it silently if it duplicates
// an already-emitted (name, file, line, column, category) within this run.
func (e *Emitter) Emit(r Record) {
	key := r.dedupKey()
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.records = append(e.records, r)
}

// Records returns every distinct record emitted so far, in emission order.
func (e *Emitter) Records() []Record {
	return e.records
}
