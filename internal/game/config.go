package game

// Window defaults. All gameplay and scene coordinates are in these logical
// pixels; the renderer scales them to the framebuffer.
const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Hand Racer"
	TargetFPS    = 60
)

// Road layout.
const (
	RoadLeft      = 80
	RoadRight     = 720
	RoadWidth     = RoadRight - RoadLeft
	ShoulderWidth = 10
	LaneCount     = 3
	LaneWidth     = RoadWidth / LaneCount // 213
)

// Car geometry (pixels).
const (
	CarW         = 52
	CarH         = 84
	EnemyW       = 52
	EnemyH       = 84
	PlayerMargin = 24
	PlayerY      = WindowHeight - CarH - PlayerMargin
)

// Lane smoothing.
const (
	LaneLerp = 0.25
	LaneSnap = 0.5
)

// Dashed lane markers.
const (
	DashLen    = 40
	DashGap    = 30
	DashScroll = 0.6 // marker scroll per unit of enemy speed
)

// Difficulty. Speeds are in pixels per frame, intervals in frames.
const (
	StartSpeed       = 5.0
	MaxSpeed         = 18.0
	SpeedStep        = 0.5
	SpeedEvery       = 8
	MaxSpawnInterval = 70
	MinSpawnInterval = 25
	SpawnScoreDiv    = 5
	SpawnJitter      = 8
	MaxEnemies       = 12
	ScorePerPass     = 1
	StartLives       = 3
	RestartCooldown  = TargetFPS * 2
)

// Spawn fairness: a lane is blocked while its newest enemy is still within
// SpawnClearance of the top edge; WallBand is the height in which all lanes
// may never be occupied at once.
const (
	SpawnClearance = EnemyH + 40
	WallBand       = EnemyH * 2
)

// Particles.
const (
	MaxParticles    = 2000
	BurstSize       = 40
	ParticleGravity = 0.25
)

// Speed lines.
const (
	SpeedLineMin    = 8.0
	SpeedLineRange  = 10.0
	SpeedLineAlpha  = 0.7
	SpeedLineReseed = 3
)

// Camera sampling and preview thumbnail.
const (
	CameraStride = 2
	PreviewW     = 213
	PreviewH     = 160
	PreviewPad   = 3
	PreviewX     = WindowWidth - PreviewW - 13
	PreviewY     = 9
)

// Font atlas cell (bitmapfont ASCII glyphs are 6x12).
const (
	FontCellW  = 6
	FontCellH  = 12
	FontFirst  = 32
	FontLast   = 126
	FontCols   = 32
	FontRows   = (FontLast - FontFirst + FontCols) / FontCols // 3
	FontAtlasW = FontCellW * FontCols
	FontAtlasH = FontCellH * FontRows
)

// Config holds the tunables that may be overridden at start-up. Everything
// else is a compile-time constant.
type Config struct {
	Lanes        int
	MaxEnemies   int
	MaxSpeed     float64
	CameraStride int
	TargetFPS    int
	Seed         uint64
}

func DefaultConfig() Config {
	return Config{
		Lanes:        LaneCount,
		MaxEnemies:   MaxEnemies,
		MaxSpeed:     MaxSpeed,
		CameraStride: CameraStride,
		TargetFPS:    TargetFPS,
		Seed:         1,
	}
}

// normalized fills zero or invalid fields with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Lanes <= 0 {
		c.Lanes = d.Lanes
	}
	if c.MaxEnemies <= 0 {
		c.MaxEnemies = d.MaxEnemies
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = d.MaxSpeed
	}
	if c.CameraStride <= 0 {
		c.CameraStride = d.CameraStride
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = d.TargetFPS
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}
