package build

type options struct {
	bufferSize     int
	flushThreshold int
}

// Option configures a Lexicon compiler.
type Option func(*options)

// WithBufferSize sets the working buffer capacity used while streaming
// entry payloads. Peak memory during serialization is bounded by it.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithFlushThreshold sets the low-water mark: the buffer is flushed to
// the sink before an entry when less than this much capacity remains.
func WithFlushThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.flushThreshold = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		bufferSize:     DefaultBufferSize,
		flushThreshold: DefaultFlushThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
