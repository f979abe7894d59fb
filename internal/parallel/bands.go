package parallel

// Band is a half-open row range [Start, End).
type Band struct {
	Start, End int
}

// Bands splits [lo, hi) into about parts contiguous bands of near-equal
// height. Every interior boundary is a multiple of align, so rows that must
// be processed together (chroma-sharing row pairs, for instance) never land
// in different bands. An unaligned lo may add one short leading band.
// align <= 1 means no alignment.
func Bands(lo, hi, parts, align int) []Band {
	if hi <= lo {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if align < 1 {
		align = 1
	}

	step := (hi - lo + parts - 1) / parts
	step = (step + align - 1) / align * align

	out := make([]Band, 0, parts)
	start := lo
	for start < hi {
		end := (start + step) / align * align
		if end <= start {
			end = start + align
		}
		end = min(end, hi)
		out = append(out, Band{Start: start, End: end})
		start = end
	}
	return out
}

// ForBands runs fn once per band on pool and waits for all of them.
func ForBands(pool *WorkerPool, bands []Band, fn func(b Band)) {
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b) }
	}
	pool.ExecuteAll(jobs)
}
