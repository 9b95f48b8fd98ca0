package errs

// Marker sentinels shared by the domain, usecase and handler layers.
// Concrete errors are created with their own message and marked with one of these.
var (
	ErrValidation          = New("validation failed")
	ErrNotFound            = New("not found")
	ErrOutOfStock          = New("out of stock")
	ErrDuplicateIsbn       = New("duplicate isbn")
	ErrConcurrencyConflict = New("concurrency conflict")
	ErrConflictExhausted   = New("concurrency conflict retries exhausted")
)

// Kind is the stable, machine-readable classification of an error.
type Kind string

const (
	KindValidation          Kind = "ValidationError"
	KindNotFound            Kind = "NotFound"
	KindOutOfStock          Kind = "OutOfStock"
	KindDuplicateIsbn       Kind = "DuplicateIsbn"
	KindConcurrencyConflict Kind = "ConcurrencyConflict"
	KindConflictExhausted   Kind = "ConflictExhausted"
	KindInternal            Kind = "Internal"
)

// ordered: ConflictExhausted is also a ConcurrencyConflict and must win
var kindMarkers = []struct {
	marker error
	kind   Kind
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrOutOfStock, KindOutOfStock},
	{ErrDuplicateIsbn, KindDuplicateIsbn},
	{ErrConflictExhausted, KindConflictExhausted},
	{ErrConcurrencyConflict, KindConcurrencyConflict},
}

// KindOf returns the Kind of err, or KindInternal for unclassified failures.
// A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, km := range kindMarkers {
		if Is(err, km.marker) {
			return km.kind
		}
	}
	return KindInternal
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrValidation)
}

// NotFoundf creates a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrNotFound)
}
