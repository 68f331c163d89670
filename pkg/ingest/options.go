package ingest

type Option func(*Ingester)

// Policy decides what happens to a line the decoder rejects.
type Policy int

const (
	FailFast Policy = iota
	SkipMalformed
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case SkipMalformed:
		return "skip_malformed"
	default:
		return "unknown"
	}
}

func WithPolicy(policy Policy) Option {
	return func(i *Ingester) {
		i.policy = policy
	}
}

func WithSink(sink Sink) Option {
	return func(i *Ingester) {
		i.sinks = append(i.sinks, sink)
	}
}

// WithMaxErrors aborts a SkipMalformed run once more than n lines were
// rejected. Zero means unlimited.
func WithMaxErrors(n int) Option {
	return func(i *Ingester) {
		i.maxErrors = n
	}
}
