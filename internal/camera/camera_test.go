package camera

import (
	"errors"
	"image"
	"io"
	"image/color"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"handracer/internal/game"
)

var skin = color.RGBA{R: 220, G: 160, B: 120, A: 255}

// frameWithBlob returns a black BGR frame with a filled skin-coloured rect.
func frameWithBlob(w, h int, r image.Rectangle) gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC3)
	if !r.Empty() {
		gocv.Rectangle(&m, r, skin, -1)
	}
	return m
}

type fakeReader struct {
	frames []gocv.Mat
	reads  int
	fail   bool
	closed bool
}

func (f *fakeReader) Read(m *gocv.Mat) bool {
	if f.fail || len(f.frames) == 0 {
		return false
	}
	src := f.frames[f.reads%len(f.frames)]
	f.reads++
	src.CopyTo(m)
	return true
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSkinDetectorFindsBlob(t *testing.T) {
	d := NewSkinDetector(DefaultConfig())
	defer d.Close()

	frame := frameWithBlob(ProcessW, ProcessH, image.Rect(200, 60, 260, 140))
	defer frame.Close()

	hand, ok, err := d.Detect(frame)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 230, hand.Center.X, 2)
	assert.InDelta(t, 100, hand.Center.Y, 2)
	assert.Greater(t, hand.Area, 3000.0)
}

func TestSkinDetectorIgnoresSpecks(t *testing.T) {
	d := NewSkinDetector(DefaultConfig())
	defer d.Close()

	for name, r := range map[string]image.Rectangle{
		"empty frame": {},
		"tiny speck":  image.Rect(10, 10, 14, 14),
	} {
		t.Run(name, func(t *testing.T) {
			frame := frameWithBlob(ProcessW, ProcessH, r)
			defer frame.Close()
			_, ok, err := d.Detect(frame)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestTrackerMirrorsImage(t *testing.T) {
	// Blob on the left of the raw image is on the player's right.
	raw := frameWithBlob(640, 480, image.Rect(40, 200, 160, 320))
	defer raw.Close()
	src := &fakeReader{frames: []gocv.Mat{raw}}
	tr := newTracker(src, NewSkinDetector(DefaultConfig()), game.LaneCount, quietLogger())
	defer tr.Close()

	assert.Nil(t, tr.Preview())
	hand, err := tr.Sample()
	require.NoError(t, err)
	require.True(t, hand.Detected)
	assert.Greater(t, hand.X, 2.0/3)
	assert.InDelta(t, 0.5, hand.Y, 0.05)
	assert.Equal(t, 2, game.LaneForPosition(hand.X, game.LaneCount))

	p := tr.Preview()
	require.NotNil(t, p)
	assert.Equal(t, game.PreviewW, p.W)
	assert.Equal(t, game.PreviewH, p.H)
	assert.Len(t, p.Pix, game.PreviewW*game.PreviewH*4)
	assert.Equal(t, uint64(1), p.Seq)

	_, err = tr.Sample()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tr.Preview().Seq)
}

func TestTrackerReadFailures(t *testing.T) {
	src := &fakeReader{fail: true}
	tr := newTracker(src, NewSkinDetector(DefaultConfig()), game.LaneCount, quietLogger())

	for i := 1; i < MaxReadFailures; i++ {
		hand, err := tr.Sample()
		require.Error(t, err)
		require.False(t, errors.Is(err, game.ErrCameraUnavailable), "read %d", i)
		assert.Equal(t, game.NoHand, hand)
	}
	_, err := tr.Sample()
	assert.ErrorIs(t, err, game.ErrCameraUnavailable)

	require.NoError(t, tr.Close())
	assert.True(t, src.closed)
}

func TestTrackerDrivesGestureInput(t *testing.T) {
	raw := frameWithBlob(640, 480, image.Rect(280, 180, 360, 300))
	defer raw.Close()
	src := &fakeReader{frames: []gocv.Mat{raw}}
	tr := newTracker(src, NewSkinDetector(DefaultConfig()), game.LaneCount, quietLogger())
	defer tr.Close()

	in := game.NewGestureInput(tr, 2)
	for i := 0; i < 6; i++ {
		h := in.Poll()
		require.True(t, h.Detected)
		assert.Equal(t, 1, game.LaneForPosition(h.X, game.LaneCount))
	}
	assert.Equal(t, 3, src.reads)
}
