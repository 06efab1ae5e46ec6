package game

import (
	"errors"
)

// ErrCameraUnavailable marks a camera that cannot be opened or has gone away
// for good. Sources wrap it; GestureInput stops polling once it sees it.
var ErrCameraUnavailable = errors.New("camera unavailable")

// HandSample is one reading of the hand tracker. X and Y are normalized to
// [0,1] in the mirrored camera image, so X grows toward the player's right.
type HandSample struct {
	X, Y     float64
	Detected bool
}

// NoHand is the "not detected" sample.
var NoHand = HandSample{}

// HandSource reads the camera and runs hand detection once per call.
type HandSource interface {
	Sample() (HandSample, error)
}

type CameraStatus int

const (
	CameraOK CameraStatus = iota
	CameraMissing
)

// GestureInput throttles a HandSource to every Stride-th frame and converts
// its failures into "not detected".
type GestureInput struct {
	src    HandSource
	stride int
	frame  int
	last   HandSample
	status CameraStatus
	err    error // last transient error, for logging
}

func NewGestureInput(src HandSource, stride int) *GestureInput {
	if stride <= 0 {
		stride = CameraStride
	}
	g := &GestureInput{src: src, stride: stride}
	if src == nil {
		g.status = CameraMissing
	}
	return g
}

// Poll returns the hand sample for this frame. Only every stride-th call
// reaches the source; the frames in between repeat the last sample.
func (g *GestureInput) Poll() HandSample {
	g.frame++
	if g.status == CameraMissing {
		g.last = NoHand
		return NoHand
	}
	if (g.frame-1)%g.stride != 0 {
		return g.last
	}

	s, err := g.src.Sample()
	g.err = err
	switch {
	case errors.Is(err, ErrCameraUnavailable):
		g.status = CameraMissing
		g.last = NoHand
	case err != nil:
		g.last = NoHand
	case !s.Detected:
		g.last = NoHand
	default:
		g.last = HandSample{
			X:        clampF(s.X, 0, 1),
			Y:        clampF(s.Y, 0, 1),
			Detected: true,
		}
	}
	return g.last
}

func (g *GestureInput) Status() CameraStatus { return g.status }

// Err returns the error from the most recent source call, if any.
func (g *GestureInput) Err() error { return g.err }
