package chat

import (
	"strings"
	"unicode/utf8"
)

// EchoPrefix is prepended to the dummy backend's echo of the last user
// message.
const EchoPrefix = "Echo: "

// Stream is the live output of one generation turn: a finite sequence of
// text fragments plus the background producer driving it. Fragments arrive
// in production order. A Stream is drained exactly once and discarded after
// the turn.
type Stream struct {
	fragments chan string
	done      chan struct{}
	err       error
}

// Fragments returns the fragment channel. It is closed when the producer
// finishes, whether successfully or not; call Join afterwards to learn the
// outcome.
func (s *Stream) Fragments() <-chan string {
	return s.fragments
}

// Join blocks until the producer has fully terminated and returns its
// terminal error. A turn is not complete until Join has returned.
func (s *Stream) Join() error {
	<-s.done
	return s.err
}

// start runs produce in its own goroutine so the caller can consume partial
// output while generation is still running. The producer writes into a
// bounded channel: when the consumer lags, the producer blocks. If the
// consumer abandons the stream, the producer keeps running until natural
// completion; in-flight generation has no cancellation path.
func start(buffer int, produce func(out chan<- string) error) *Stream {
	s := &Stream{
		fragments: make(chan string, buffer),
		done:      make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		s.err = produce(s.fragments)
		close(s.fragments)
	}()
	return s
}

// EchoStream builds the dummy backend's stream: one fragment per rune of
// "Echo: " + the given text, already complete at creation. No goroutine is
// involved, and each call yields a fresh, fully-buffered sequence.
func EchoStream(text string) *Stream {
	full := EchoPrefix + text
	s := &Stream{
		fragments: make(chan string, utf8.RuneCountInString(full)),
		done:      make(chan struct{}),
	}
	for _, r := range full {
		s.fragments <- string(r)
	}
	close(s.fragments)
	close(s.done)
	return s
}

// Drain consumes the whole stream, invoking sink for every fragment as it
// arrives, then joins the producer. It returns the accumulated text; on
// error the partial buffer collected so far is returned alongside it.
func Drain(s *Stream, sink func(fragment string)) (string, error) {
	var buf strings.Builder
	for fragment := range s.Fragments() {
		buf.WriteString(fragment)
		if sink != nil {
			sink(fragment)
		}
	}
	if err := s.Join(); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}
