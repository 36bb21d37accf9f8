package config

type WeaponsConfig struct {
	Weapons []WeaponDef `yaml:"weapons"`
}

type WeaponDef struct {
	Kind      string  `yaml:"kind"`
	Range     float64 `yaml:"range"`
	Speed     float64 `yaml:"speed"`
	Dmg       int     `yaml:"dmg"`
	Sprite    string  `yaml:"sprite"`
	Color     string  `yaml:"color"`
	TipOffset float64 `yaml:"tip_offset"`
	Note      string  `yaml:"note"`
}
