package matching

// handleFlush clears every book and the registry, with no output. Book
// objects themselves are retained and reused rather than deallocated, so
// a symbol that traded before flush doesn't pay a fresh allocation on
// its next command.
func (e *Engine) handleFlush() {
	for _, bk := range e.books {
		bk.Clear()
	}
	e.reg.Clear()
}
