package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back pre-recorded frames for testing. Individual reads can
// be forced to fail to exercise the recreate-on-failure path.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	mu      sync.Mutex
	open    bool
	failAt  map[int]bool
	reads   int
	reopens int
}

func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
		failAt: make(map[int]bool),
	}
}

func (c *MockCamera) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		c.open = true
		c.reopens++
	}
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

func (c *MockCamera) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}

	read := c.reads
	c.reads++

	if c.failAt[read] {
		return nil, ErrFrameRead
	}

	if len(c.frames) == 0 {
		return nil, ErrFrameRead
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrFrameRead
		}
		c.index = 0
	}

	// Clone so the caller can annotate and close freely.
	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// FailRead forces the n-th read (zero-based, counted across the camera's
// lifetime) to return ErrFrameRead.
func (c *MockCamera) FailRead(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAt[n] = true
}

// Reopens reports how many times the camera handle was (re)created.
func (c *MockCamera) Reopens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reopens
}
