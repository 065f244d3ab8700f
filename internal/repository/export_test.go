package repository

// SetStreamPageSize shrinks the StreamAll page for tests and returns a
// function restoring the previous size.
func SetStreamPageSize(n int) (restore func()) {
	prev := streamPageSize
	streamPageSize = n
	return func() { streamPageSize = prev }
}
