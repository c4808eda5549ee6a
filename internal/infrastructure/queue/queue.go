// Package queue provides unbounded FIFO channels for connecting pipeline stages.
package queue

// New returns the two ends of an unbounded, ordered, single-producer
// single-consumer channel. Sends never block on a slow consumer; values are
// buffered in memory until received. Closing the send end closes the receive
// end once every buffered value has been delivered.
func New[T any]() (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			buf  []T
			recv = in
		)

		for recv != nil || len(buf) > 0 {
			var (
				send chan<- T
				next T
			)
			if len(buf) > 0 {
				send = out
				next = buf[0]
			}

			select {
			case v, ok := <-recv:
				if !ok {
					recv = nil
					continue
				}
				buf = append(buf, v)
			case send <- next:
				var zero T
				buf[0] = zero
				buf = buf[1:]
			}
		}
	}()

	return in, out
}
