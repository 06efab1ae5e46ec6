package camera

import (
	"image"

	"gocv.io/x/gocv"
)

// Hand is a detected hand in frame pixel coordinates.
type Hand struct {
	Center image.Point
	Bounds image.Rectangle
	Area   float64
}

// Detector finds at most one hand in a BGR frame.
type Detector interface {
	// Detect analyzes a frame and reports the most prominent hand. ok is
	// false when nothing qualifies.
	Detect(frame gocv.Mat) (h Hand, ok bool, err error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds the skin segmentation thresholds. Hue is in OpenCV units
// (0..180); saturation and value in 0..255.
type Config struct {
	LowerHSV [3]float64
	UpperHSV [3]float64

	// KernelSize is the side of the square used to open the mask.
	KernelSize int

	// MinAreaFraction is the smallest blob, relative to the frame area, that
	// counts as a hand.
	MinAreaFraction float64
}

func DefaultConfig() Config {
	return Config{
		LowerHSV:        [3]float64{0, 40, 60},
		UpperHSV:        [3]float64{25, 255, 255},
		KernelSize:      5,
		MinAreaFraction: 0.01,
	}
}

// SkinDetector segments skin-coloured pixels and picks the largest blob.
type SkinDetector struct {
	cfg    Config
	hsv    gocv.Mat
	mask   gocv.Mat
	kernel gocv.Mat
}

func NewSkinDetector(cfg Config) *SkinDetector {
	d := DefaultConfig()
	if cfg.KernelSize <= 0 {
		cfg.KernelSize = d.KernelSize
	}
	if cfg.MinAreaFraction <= 0 {
		cfg.MinAreaFraction = d.MinAreaFraction
	}
	if cfg.UpperHSV == ([3]float64{}) {
		cfg.LowerHSV, cfg.UpperHSV = d.LowerHSV, d.UpperHSV
	}
	return &SkinDetector{
		cfg:    cfg,
		hsv:    gocv.NewMat(),
		mask:   gocv.NewMat(),
		kernel: gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(cfg.KernelSize, cfg.KernelSize)),
	}
}

func (d *SkinDetector) Detect(frame gocv.Mat) (Hand, bool, error) {
	if frame.Empty() {
		return Hand{}, false, nil
	}
	gocv.CvtColor(frame, &d.hsv, gocv.ColorBGRToHSV)
	lo := gocv.NewScalar(d.cfg.LowerHSV[0], d.cfg.LowerHSV[1], d.cfg.LowerHSV[2], 0)
	hi := gocv.NewScalar(d.cfg.UpperHSV[0], d.cfg.UpperHSV[1], d.cfg.UpperHSV[2], 0)
	gocv.InRangeWithScalar(d.hsv, lo, hi, &d.mask)
	gocv.MorphologyEx(d.mask, &d.mask, gocv.MorphOpen, d.kernel)

	contours := gocv.FindContours(d.mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	best, bestArea := -1, 0.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > bestArea {
			best, bestArea = i, a
		}
	}
	minArea := d.cfg.MinAreaFraction * float64(frame.Rows()*frame.Cols())
	if best < 0 || bestArea < minArea {
		return Hand{}, false, nil
	}

	r := gocv.BoundingRect(contours.At(best))
	return Hand{
		Center: image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2),
		Bounds: r,
		Area:   bestArea,
	}, true, nil
}

func (d *SkinDetector) Close() error {
	d.hsv.Close()
	d.mask.Close()
	return d.kernel.Close()
}
