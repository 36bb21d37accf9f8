package combat

type FXType string

const (
	FXSpark     FXType = "spark"
	FXBurn      FXType = "burn"
	FXIce       FXType = "ice"
	FXExplosion FXType = "explosion"
	FXHeal      FXType = "heal"
	FXStun      FXType = "stun"
	FXBigKill   FXType = "bigkill"
)

const (
	DefaultFXLife = 36

	shakeDecay   = 0.92
	shakeEpsilon = 0.01
)

// FX is a render-only marker. Combat logic never reads it back.
type FX struct {
	Type   FXType  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Life   int     `json:"life"`
	Radius float64 `json:"r,omitempty"`
}

type FXOpts struct {
	Life   int
	Radius float64
}

func (b *Battle) SpawnFX(t FXType, x, y float64, opts FXOpts) {
	life := opts.Life
	if life <= 0 {
		life = DefaultFXLife
	}
	b.FX = append(b.FX, FX{Type: t, X: x, Y: y, Life: life, Radius: opts.Radius})
}

// tickFX ages every marker by one frame and decays the camera shake.
func (b *Battle) tickFX() {
	kept := b.FX[:0]
	for _, f := range b.FX {
		f.Life--
		if f.Life > 0 {
			kept = append(kept, f)
		}
	}
	b.FX = kept

	b.CameraShake *= shakeDecay
	if b.CameraShake < shakeEpsilon {
		b.CameraShake = 0
	}
}

func (b *Battle) jitter(amp float64) float64 {
	return (b.rng.Float64()*2 - 1) * amp
}
