package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"duelsim/internal/combat"
)

func snapshot() combat.Snapshot {
	return combat.Snapshot{
		Frame: 12,
		State: combat.StateFighting,
		Fighters: [2]combat.FighterView{
			{ID: "A", Weapon: "Spear", Sprite: "spear", WeaponColor: "#9ad3ff", Color: "#ff8fab", HP: 100, MaxHP: 100, X: 180, Y: 665.6},
			{ID: "B", Weapon: "Dagger", Sprite: "dagger", WeaponColor: "#ffd8a8", Color: "#ffd166", HP: 100, MaxHP: 100, X: 540, Y: 665.6},
		},
		FX: []combat.FX{{Type: combat.FXSpark, X: 360, Y: 640, Life: 20}},
	}
}

func sameRGB(t *testing.T, img image.Image, x, y int, want string) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	w := ParseHexColor(want)
	if got.R != w.R || got.G != w.G || got.B != w.B {
		t.Errorf("pixel (%d,%d) = %v, want %s", x, y, got, want)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff8fab", color.NRGBA{0xff, 0x8f, 0xab, 0xff}},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}},
		{"bogus", color.NRGBA{0, 0, 0, 0xff}},
	}
	for _, tt := range tests {
		if got := ParseHexColor(tt.in); got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFrameBounds(t *testing.T) {
	img := New().Frame(snapshot())
	b := img.Bounds()
	if b.Dx() != combat.ArenaWidth || b.Dy() != combat.ArenaHeight {
		t.Fatalf("bounds = %v", b)
	}
}

func TestFrameHealthBars(t *testing.T) {
	r := New()
	s := snapshot()
	s.Fighters[1].HP = 50
	img := r.Frame(s)

	sameRGB(t, img, 100, 35, "#ff8fab")
	sameRGB(t, img, 500, 35, "#ffd166")
	sameRGB(t, img, 600, 35, "#143036")
}

func TestFrameEmptyBarWhenDefeated(t *testing.T) {
	s := snapshot()
	s.Fighters[0].HP = -4
	s.State = combat.StateFinished
	s.Winner = "B"
	img := New().Frame(s)
	sameRGB(t, img, 30, 35, "#143036")
}

func TestThumbnail(t *testing.T) {
	img := New().Frame(snapshot())
	th := Thumbnail(img, 180)
	if b := th.Bounds(); b.Dx() != 180 || b.Dy() != 320 {
		t.Fatalf("thumbnail bounds = %v", b)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(Thumbnail(New().Frame(snapshot()), 90), path); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
}
