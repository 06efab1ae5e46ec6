package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	calls   int
	samples []HandSample
	errs    []error
}

func (s *scriptedSource) Sample() (HandSample, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.samples) {
		return s.samples[i], err
	}
	return HandSample{X: 0.5, Y: 0.5, Detected: true}, err
}

func TestGestureInputStride(t *testing.T) {
	src := &scriptedSource{samples: []HandSample{
		{X: 0.1, Y: 0.2, Detected: true},
		{X: 0.8, Y: 0.3, Detected: true},
	}}
	in := NewGestureInput(src, 2)

	first := in.Poll()
	assert.Equal(t, 0.1, first.X)
	assert.Equal(t, first, in.Poll(), "in-between frame repeats the last sample")
	assert.Equal(t, 0.8, in.Poll().X)

	for i := 0; i < 7; i++ {
		in.Poll()
	}
	assert.Equal(t, 5, src.calls)
	assert.Equal(t, CameraOK, in.Status())
}

func TestGestureInputTransientFailure(t *testing.T) {
	src := &scriptedSource{errs: []error{errors.New("frame dropped")}}
	in := NewGestureInput(src, 1)

	assert.Equal(t, NoHand, in.Poll())
	assert.Error(t, in.Err())
	assert.Equal(t, CameraOK, in.Status())

	hand := in.Poll()
	assert.True(t, hand.Detected, "recovers on the next sample")
	assert.NoError(t, in.Err())
}

func TestGestureInputCameraGone(t *testing.T) {
	src := &scriptedSource{errs: []error{nil, fmt.Errorf("read device 0: %w", ErrCameraUnavailable)}}
	in := NewGestureInput(src, 1)

	require.True(t, in.Poll().Detected)
	assert.Equal(t, NoHand, in.Poll())
	assert.Equal(t, CameraMissing, in.Status())

	for i := 0; i < 10; i++ {
		assert.Equal(t, NoHand, in.Poll())
	}
	assert.Equal(t, 2, src.calls, "a missing camera is never polled again")
}

func TestGestureInputWithoutSource(t *testing.T) {
	in := NewGestureInput(nil, 2)
	assert.Equal(t, CameraMissing, in.Status())
	assert.Equal(t, NoHand, in.Poll())

	g := New(DefaultConfig(), nil)
	g.Poll(in)
	assert.Equal(t, CameraMissing, g.State.Camera)
}

func TestGestureInputClampsCoordinates(t *testing.T) {
	src := &scriptedSource{samples: []HandSample{
		{X: 1.4, Y: -0.2, Detected: true},
		{X: 0.9, Y: 0.9, Detected: false},
	}}
	in := NewGestureInput(src, 1)

	h := in.Poll()
	assert.Equal(t, 1.0, h.X)
	assert.Equal(t, 0.0, h.Y)
	assert.Equal(t, NoHand, in.Poll(), "undetected samples carry no position")
}
