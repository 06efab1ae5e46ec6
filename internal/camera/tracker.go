package camera

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"gocv.io/x/gocv"

	"handracer/internal/game"
)

// Processing size. Frames are downscaled before detection.
const (
	ProcessW = 320
	ProcessH = 240

	// MaxReadFailures consecutive failed reads mark the camera as gone.
	MaxReadFailures = 60
)

var errFrameDropped = errors.New("camera frame dropped")

var (
	guideColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boundsColor = color.RGBA{R: 80, G: 220, B: 80, A: 255}
	markerColor = color.RGBA{R: 255, G: 220, B: 40, A: 255}
)

// frameReader is the part of gocv.VideoCapture the tracker needs.
type frameReader interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Tracker reads the webcam, mirrors each frame, detects the hand and keeps
// an RGBA preview thumbnail. It implements game.HandSource.
type Tracker struct {
	src   frameReader
	det   Detector
	lanes int
	log   *log.Logger

	frame   gocv.Mat
	flipped gocv.Mat
	small   gocv.Mat
	thumb   gocv.Mat
	rgba    gocv.Mat

	failures int
	preview  game.Preview
}

// Open starts capturing from a camera device. The returned error wraps
// game.ErrCameraUnavailable when the device cannot be used.
func Open(device, lanes int, cfg Config, logger *log.Logger) (*Tracker, error) {
	vc, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w: %w", device, game.ErrCameraUnavailable, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open camera %d: %w", device, game.ErrCameraUnavailable)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, 640)
	vc.Set(gocv.VideoCaptureFrameHeight, 480)
	if logger != nil {
		logger.Info("camera opened", "device", device,
			"width", vc.Get(gocv.VideoCaptureFrameWidth),
			"height", vc.Get(gocv.VideoCaptureFrameHeight))
	}
	return newTracker(vc, NewSkinDetector(cfg), lanes, logger), nil
}

func newTracker(src frameReader, det Detector, lanes int, logger *log.Logger) *Tracker {
	if lanes <= 0 {
		lanes = game.LaneCount
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{
		src:     src,
		det:     det,
		lanes:   lanes,
		log:     logger.WithPrefix("camera"),
		frame:   gocv.NewMat(),
		flipped: gocv.NewMat(),
		small:   gocv.NewMat(),
		thumb:   gocv.NewMat(),
		rgba:    gocv.NewMat(),
		preview: game.Preview{W: game.PreviewW, H: game.PreviewH},
	}
}

// Sample reads and analyses one frame.
func (t *Tracker) Sample() (game.HandSample, error) {
	if ok := t.src.Read(&t.frame); !ok || t.frame.Empty() {
		t.failures++
		if t.failures >= MaxReadFailures {
			return game.NoHand, fmt.Errorf("%d reads failed: %w", t.failures, game.ErrCameraUnavailable)
		}
		return game.NoHand, errFrameDropped
	}
	if t.failures > 0 {
		t.log.Debug("camera recovered", "failed_reads", t.failures)
		t.failures = 0
	}

	gocv.Flip(t.frame, &t.flipped, 1)
	gocv.Resize(t.flipped, &t.small, image.Pt(ProcessW, ProcessH), 0, 0, gocv.InterpolationLinear)

	hand, ok, err := t.det.Detect(t.small)
	if err != nil {
		return game.NoHand, fmt.Errorf("detect hand: %w", err)
	}
	t.renderPreview(hand, ok)
	if !ok {
		return game.NoHand, nil
	}
	return game.HandSample{
		X:        float64(hand.Center.X) / float64(t.small.Cols()),
		Y:        float64(hand.Center.Y) / float64(t.small.Rows()),
		Detected: true,
	}, nil
}

// renderPreview draws lane guides and the detected blob onto the thumbnail.
func (t *Tracker) renderPreview(hand Hand, ok bool) {
	w, h := t.preview.W, t.preview.H
	gocv.Resize(t.small, &t.thumb, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	for i := 1; i < t.lanes; i++ {
		x := w * i / t.lanes
		gocv.Line(&t.thumb, image.Pt(x, 0), image.Pt(x, h), guideColor, 1)
	}
	if ok {
		sx := float64(w) / float64(t.small.Cols())
		sy := float64(h) / float64(t.small.Rows())
		r := image.Rect(
			int(float64(hand.Bounds.Min.X)*sx), int(float64(hand.Bounds.Min.Y)*sy),
			int(float64(hand.Bounds.Max.X)*sx), int(float64(hand.Bounds.Max.Y)*sy),
		)
		gocv.Rectangle(&t.thumb, r, boundsColor, 1)
		c := image.Pt(int(float64(hand.Center.X)*sx), int(float64(hand.Center.Y)*sy))
		gocv.Circle(&t.thumb, c, 4, markerColor, -1)
	}

	gocv.CvtColor(t.thumb, &t.rgba, gocv.ColorBGRToRGBA)
	t.preview.Pix = t.rgba.ToBytes()
	t.preview.Seq++
}

// Preview returns the latest thumbnail, or nil before the first frame.
func (t *Tracker) Preview() *game.Preview {
	if t.preview.Seq == 0 {
		return nil
	}
	return &t.preview
}

func (t *Tracker) Close() error {
	for _, m := range []*gocv.Mat{&t.frame, &t.flipped, &t.small, &t.thumb, &t.rgba} {
		m.Close()
	}
	return errors.Join(t.det.Close(), t.src.Close())
}
