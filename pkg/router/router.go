package router

import (
	"log/slog"
	"sync"
)

// Fan duplicates one input stream to named subscribers, strict FIFO per
// subscriber with blocking delivery, so backpressure propagates to the
// producer. Closing the input closes every subscription.
type Fan[T any] struct {
	debug   bool
	name    string
	mu      sync.Mutex
	input   <-chan T
	outputs map[string]chan<- T
}

func NewFan[T any](name string, input <-chan T) *Fan[T] {
	return &Fan[T]{
		name:    name,
		input:   input,
		outputs: make(map[string](chan<- T)),
	}
}

func (f *Fan[T]) SetDebug(debug bool) {
	f.debug = debug
}

func (f *Fan[T]) Subscribe(client string) <-chan T {
	if f.debug {
		slog.Debug("subscribing to fan", "fan", f.name, "client", client)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.outputs[client]; ok {
		panic("client already subscribed")
	}
	c := make(chan T, 1)
	f.outputs[client] = c
	return c
}

func (f *Fan[T]) Unsubscribe(client string) {
	if f.debug {
		slog.Debug("unsubscribing from fan", "fan", f.name, "client", client)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.outputs[client]; !ok {
		panic("client not subscribed")
	}
	close(f.outputs[client])
	delete(f.outputs, client)
}

func (f *Fan[T]) Run() error {
	for v := range f.input {
		if f.debug {
			slog.Debug("fan received value", "fan", f.name, "value", v)
		}
		f.mu.Lock()
		for client, ch := range f.outputs {
			if f.debug {
				slog.Debug("fan sending value", "subscriber", client, "fan", f.name, "value", v)
			}
			ch <- v
		}
		f.mu.Unlock()
	}

	// input drained: cascade the close to every subscriber
	f.mu.Lock()
	defer f.mu.Unlock()
	for client, ch := range f.outputs {
		close(ch)
		delete(f.outputs, client)
	}
	return nil
}
