// Package async holds the small channel helpers the cmds use to juggle
// background work without hand-rolled sync.
package async

import (
	"bufio"
	"os"
)

// Promise runs f in a goroutine and returns the channel its result will
// arrive on.
func Promise[R any](f func() R) <-chan R {
	out := make(chan R)
	go func() {
		out <- f()
	}()
	return out
}

// Job runs f in a goroutine and returns a channel closed on completion.
func Job(f func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()
	return done
}

// EnterKey returns a channel closed when the user presses Enter on stdin.
func EnterKey() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadBytes('\n')
		close(done)
	}()
	return done
}
