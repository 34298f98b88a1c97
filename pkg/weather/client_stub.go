package weather

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu     sync.Mutex
	report Report
	err    error
	calls  int
	lastAt Coordinates
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) Current(ctx context.Context, at Coordinates) (Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastAt = at
	if c.err != nil {
		return Report{}, c.err
	}
	return c.report, nil
}

func (c *ClientStub) SetReport(report Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
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

func (c *ClientStub) LastCoordinates() Coordinates {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAt
}
