package voting

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is an offset/limit view over an ordered collection. Number is zero based.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int
	TotalPages    int
}

func paginate[T any](all []T, number, size int) Page[T] {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	total := len(all)
	p := Page[T]{
		Items:         []T{},
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    (total + size - 1) / size,
	}
	// Compared before multiplying so huge page numbers cannot overflow.
	if number >= p.TotalPages {
		return p
	}
	start := number * size
	end := min(start+size, total)
	p.Items = all[start:end]
	return p
}

func (p Page[T]) First() bool { return p.Number == 0 }

func (p Page[T]) Last() bool { return p.Number >= p.TotalPages-1 }

func (p Page[T]) Empty() bool { return len(p.Items) == 0 }
