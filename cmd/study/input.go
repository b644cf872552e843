package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
)

var errInputActive = errors.New("answer input already started")

// lineInput delivers trimmed lines from r. The reader goroutine lives as long
// as r does; Start and Stop only attach and detach a consumer.
type lineInput struct {
	r    io.Reader
	once sync.Once
	raw  chan string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ study.AnswerInput = (*lineInput)(nil)

func newLineInput(r io.Reader) *lineInput {
	return &lineInput{r: r, raw: make(chan string)}
}

func (in *lineInput) read() {
	defer close(in.raw)
	scanner := bufio.NewScanner(in.r)
	for scanner.Scan() {
		in.raw <- strings.TrimSpace(scanner.Text())
	}
}

// Start begins forwarding lines until ctx ends, Stop is called or the reader
// hits EOF. The returned channel is closed in all three cases.
func (in *lineInput) Start(ctx context.Context) (<-chan string, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.cancel != nil {
		return nil, errInputActive
	}
	in.once.Do(func() { go in.read() })

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan string)
	done := make(chan struct{})
	in.cancel = cancel
	in.done = done

	go func() {
		defer close(done)
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-in.raw:
				if !ok {
					return
				}
				select {
				case out <- line:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Stop detaches the consumer and waits for its channel to close.
func (in *lineInput) Stop() error {
	in.mu.Lock()
	cancel, done := in.cancel, in.done
	in.cancel, in.done = nil, nil
	in.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
