package combat

const (
	MaxHP        = 100
	MaxAbilities = 3
)

var palette = []string{"#ffd166", "#ef476f", "#06d6a0", "#118ab2", "#8338ec", "#ff8fab"}

// RandomColor picks a display color from the fighter palette.
func RandomColor(r Rand) string {
	i := int(r.Float64() * float64(len(palette)))
	if i >= len(palette) {
		i = len(palette) - 1
	}
	return palette[i]
}

type Fighter struct {
	ID string

	WeaponKind  string
	Range       float64
	Speed       float64
	Dmg         int
	Sprite      string
	WeaponColor string
	TipOffset   float64
	Abilities   []string

	MaxHP    int
	HP       int
	Pos      Vec2
	Vx       float64
	Cooldown int
	Stunned  int
	Burn     BurnStatus
	Slow     SlowStatus
	SpeedMul float64
	Color    string

	catalog *Catalog
}

// NewFighter builds a fighter armed from cat (the default catalog when nil).
func NewFighter(id, weapon string, abilities []string, cat *Catalog) (*Fighter, error) {
	if cat == nil {
		cat = DefaultCatalog()
	}
	f := &Fighter{ID: id, MaxHP: MaxHP, catalog: cat}
	if err := f.SetWeapon(weapon); err != nil {
		return nil, err
	}
	f.SetAbilities(abilities)
	f.Color = palette[paletteSlot(id)]
	f.ResetState()
	return f, nil
}

func paletteSlot(id string) int {
	sum := 0
	for i := 0; i < len(id); i++ {
		sum += int(id[i])
	}
	return sum % len(palette)
}

// SetWeapon swaps the weapon stats in one go. An unknown kind leaves the
// fighter untouched.
func (f *Fighter) SetWeapon(kind string) error {
	ws, ok := f.catalog.Lookup(kind)
	if !ok {
		return &UnknownWeaponError{Kind: kind}
	}
	f.WeaponKind = ws.Kind
	f.Range = ws.Range
	f.Speed = ws.Speed
	f.Dmg = ws.Dmg
	f.Sprite = ws.Sprite
	f.WeaponColor = ws.Color
	f.TipOffset = ws.TipOffset
	if f.TipOffset <= 0 {
		f.TipOffset = defaultTipOffset
	}
	return nil
}

// SetAbilities keeps the first MaxAbilities ids in the given order.
func (f *Fighter) SetAbilities(ids []string) {
	if len(ids) > MaxAbilities {
		ids = ids[:MaxAbilities]
	}
	f.Abilities = append([]string(nil), ids...)
}

func (f *Fighter) ResetState() {
	f.HP = f.MaxHP
	f.Cooldown = 0
	f.Stunned = 0
	f.Burn = BurnStatus{}
	f.Slow = SlowStatus{}
	f.SpeedMul = 1
}

func (f *Fighter) Defeated() bool { return f.HP <= 0 }
