package game

import "math"

type Particle struct {
	X, Y   float64
	VX, VY float64

	Size float64

	Life    float64 // frames elapsed
	MaxLife float64

	Col RGB
}

// Remaining returns the fraction of lifetime left in [0,1].
func (p *Particle) Remaining() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clampF(1-p.Life/p.MaxLife, 0, 1)
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	bursts uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// SpawnCrash emits a burst of BurstSize particles at (x, y) in the colours of
// the crashed car plus two spark colours.
func (ps *ParticleSystem) SpawnCrash(x, y float64, pal CarPalette) {
	ps.bursts++
	r := NewRand(hashTick(ps.seed^0xA5A5A5A5, ps.bursts))
	cols := [4]RGB{pal.Body, pal.Dark, Palette.SparkHot, Palette.SparkMid}
	for range BurstSize {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(2, 9)
		life := float64(r.Range(25, 50))
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * spd,
			VY:      math.Sin(ang) * spd,
			Size:    float64(r.Range(3, 8)),
			MaxLife: life,
			Col:     cols[r.Intn(len(cols))],
		})
	}
}

// Update advances every particle by one frame and drops expired ones.
func (ps *ParticleSystem) Update() {
	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += ParticleGravity
		p.Life++
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		i++
	}
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// ParticleRenderData appends disc sprites for all live particles. Colour and
// size fade with the remaining lifetime.
// Format: [x, y, size, r, g, b, a, rotation] * N.
func (ps *ParticleSystem) ParticleRenderData(buf []float32) []float32 {
	for i := range ps.P {
		p := &ps.P[i]
		t := p.Remaining()
		if t <= 0 {
			continue
		}
		size := math.Max(1, p.Size*t)
		rc, gc, bc := p.Col.Scale(t).floats()
		buf = append(buf,
			float32(math.Round(p.X)), float32(math.Round(p.Y)), float32(size*2),
			rc, gc, bc, 1, 0,
		)
	}
	return buf
}
