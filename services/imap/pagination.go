package imap

// computeRange maps a limit/offset page onto absolute 1-based message
// sequence numbers, where the newest message carries the highest number. The
// returned range is inclusive; the caller reverses the fetched list so the
// newest message comes first. An offset past the end collapses the window
// toward message 1.
func computeRange(total uint32, limit, offset int) (start, end uint32) {
	t := int64(total)

	e := t - int64(offset)
	if e < 1 {
		e = 1
	}

	st := t - int64(offset) - int64(limit) + 1
	if st < 1 {
		st = 1
	}

	return uint32(st), uint32(e)
}
