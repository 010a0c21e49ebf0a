package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many items any windowed read can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services. The
// document keeps entity arrays in insertion order, so a window over the slice
// is a stable page.
type Params struct {
	Limit  int
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeOffset clamps negative offsets to zero.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Normalize applies both limit and offset rules.
func Normalize(p Params) Params {
	return Params{
		Limit:  NormalizeLimit(p.Limit),
		Offset: NormalizeOffset(p.Offset),
	}
}

// Window returns the half-open [start, end) bounds of the page within a
// sequence of the given total length. An offset past the end yields an empty
// window at the sequence end.
func Window(p Params, total int) (start, end int) {
	p = Normalize(p)
	if total < 0 {
		total = 0
	}
	start = p.Offset
	if start > total {
		start = total
	}
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}
