package exchange

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu    sync.Mutex
	rate  Rate
	err   error
	calls int
}

func NewClientStub(rate Rate) *ClientStub {
	return &ClientStub{rate: rate}
}

func (c *ClientStub) JPYToTWD(ctx context.Context) (Rate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	return c.rate, nil
}

func (c *ClientStub) SetRate(rate Rate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
	c.err = nil
}

func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *ClientStub) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
