package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"duelsim/internal/combat"
)

const (
	hudPad     = 24
	hudBarW    = 300
	hudBarY    = 28
	hudBarH    = 14
	floorRatio = 0.72
	bodyRadius = 28
)

// Renderer paints a combat.Snapshot at arena resolution.
type Renderer struct {
	W, H int
	face font.Face
}

func New() *Renderer {
	return &Renderer{W: combat.ArenaWidth, H: combat.ArenaHeight, face: basicfont.Face7x13}
}

func (r *Renderer) Frame(s combat.Snapshot) image.Image {
	dc := gg.NewContext(r.W, r.H)
	dc.SetFontFace(r.face)
	r.background(dc)

	dc.Push()
	ox, oy := shakeOffset(s)
	dc.Translate(ox, oy)
	r.floor(dc)
	r.fighter(dc, s.Fighters[0], 1)
	r.fighter(dc, s.Fighters[1], -1)
	r.effects(dc, s.FX)
	dc.Pop()

	r.hud(dc, s)
	return dc.Image()
}

// shakeOffset turns the shake magnitude into a frame-stable offset so the
// same snapshot always renders the same image.
func shakeOffset(s combat.Snapshot) (float64, float64) {
	if s.CameraShake == 0 {
		return 0, 0
	}
	phase := float64(s.Frame) * 1.7
	return s.CameraShake * math.Sin(phase), s.CameraShake * 0.5 * math.Cos(phase)
}

func (r *Renderer) background(dc *gg.Context) {
	grad := gg.NewLinearGradient(0, 0, 0, float64(r.H))
	grad.AddColorStop(0, ParseHexColor("#061425"))
	grad.AddColorStop(1, ParseHexColor("#041023"))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(r.W), float64(r.H))
	dc.Fill()
}

func (r *Renderer) floor(dc *gg.Context) {
	w, h := float64(r.W), float64(r.H)
	dc.SetColor(ParseHexColor("#071122"))
	dc.DrawRectangle(0, h*floorRatio, w, h*(1-floorRatio))
	dc.Fill()
	dc.SetColor(rgba(255, 255, 255, 0.03))
	dc.SetLineWidth(1)
	dc.DrawLine(w/2, h*floorRatio, w/2, h)
	dc.Stroke()
}

func (r *Renderer) fighter(dc *gg.Context, f combat.FighterView, facing float64) {
	dc.Push()
	defer dc.Pop()
	dc.Translate(f.X, f.Y)
	drawShadow(dc, 8, 60, 46, 18)

	dc.Push()
	dc.Rotate(0.18 * facing)
	dc.Scale(facing*0.9, 0.9)
	dc.Translate(-12, -30)
	drawWeapon(dc, f.Sprite, ParseHexColor(f.WeaponColor))
	dc.Pop()

	dc.SetColor(ParseHexColor("#07172b"))
	dc.DrawCircle(0, 0, bodyRadius)
	dc.Fill()
	dc.SetColor(ParseHexColor(f.Color))
	dc.DrawCircle(0, 0, 10)
	dc.Fill()

	if f.Stunned > 0 {
		dc.SetColor(rgba(255, 255, 180, 0.6))
		dc.SetLineWidth(2)
		dc.DrawCircle(0, -bodyRadius-10, 8)
		dc.Stroke()
	}
	if f.HP <= 0 {
		dc.SetColor(rgba(239, 71, 111, 0.9))
		dc.SetLineWidth(4)
		dc.DrawLine(-14, -14, 14, 14)
		dc.DrawLine(-14, 14, 14, -14)
		dc.Stroke()
	}
}

// drawWeapon draws the weapon shape in local sprite space with the tip
// pointing along +X.
func drawWeapon(dc *gg.Context, sprite string, tip color.Color) {
	shaft := func(x, y, w, h float64, hex string) {
		dc.SetColor(ParseHexColor(hex))
		dc.DrawRoundedRectangle(x, y, w, h, h/2)
		dc.Fill()
	}
	switch sprite {
	case "spear":
		shaft(0, 28, 200, 6, "#3b3b3b")
		dc.SetColor(tip)
		dc.MoveTo(200, 8)
		dc.LineTo(220, 30)
		dc.LineTo(200, 52)
		dc.ClosePath()
		dc.Fill()
	case "dagger":
		shaft(0, 26, 110, 8, "#2b2b2b")
		dc.SetColor(tip)
		dc.MoveTo(110, 30)
		dc.LineTo(130, 18)
		dc.LineTo(130, 42)
		dc.ClosePath()
		dc.Fill()
	case "sword":
		shaft(6, 34, 110, 10, "#2e2e2e")
		dc.SetColor(tip)
		dc.DrawRoundedRectangle(116, 26, 12, 28, 4)
		dc.Fill()
	case "axe":
		shaft(0, 34, 86, 8, "#2e2e2e")
		dc.SetColor(tip)
		dc.MoveTo(86, 10)
		dc.CubicTo(120, 8, 130, 36, 86, 52)
		dc.ClosePath()
		dc.Fill()
	default:
		shaft(0, 28, 120, 6, "#3b3b3b")
	}
}

func (r *Renderer) effects(dc *gg.Context, fx []combat.FX) {
	fade := func(f combat.FX) float64 { return float64(f.Life) / combat.DefaultFXLife }
	for _, f := range fx {
		switch f.Type {
		case combat.FXSpark:
			dc.SetColor(rgba(255, 220, 120, 0.7))
			dc.DrawCircle(f.X, f.Y, 8*fade(f))
		case combat.FXBurn:
			dc.SetColor(rgba(255, 90, 40, 0.35))
			dc.DrawCircle(f.X, f.Y, 10)
		case combat.FXExplosion:
			dc.SetColor(rgba(255, 130, 60, 0.12))
			dc.DrawCircle(f.X, f.Y, f.Radius*fade(f))
		case combat.FXBigKill:
			dc.SetColor(rgba(255, 220, 120, 0.08))
			dc.DrawRectangle(-hudPad, -hudPad, float64(r.W)+2*hudPad, float64(r.H)+2*hudPad)
		case combat.FXIce:
			dc.SetColor(rgba(160, 230, 255, 0.18))
			dc.DrawCircle(f.X, f.Y, 12)
		case combat.FXHeal:
			dc.SetColor(rgba(160, 255, 180, 0.22))
			dc.DrawCircle(f.X, f.Y, 10)
		case combat.FXStun:
			dc.SetColor(rgba(255, 255, 180, 0.18))
			dc.DrawCircle(f.X, f.Y, 14)
		default:
			continue
		}
		dc.Fill()
	}
}

func (r *Renderer) hud(dc *gg.Context, s combat.Snapshot) {
	r.healthBar(dc, s.Fighters[0], hudPad, hudBarY)
	r.healthBar(dc, s.Fighters[1], float64(r.W-hudPad-hudBarW), hudBarY)

	dc.SetColor(ParseHexColor("#d9f2ff"))
	line := fmt.Sprintf("%s  frame %d", s.State, s.Frame)
	if w, ok := s.WinnerView(); ok {
		line = fmt.Sprintf("Winner: %s (%s)", w.ID, w.Weapon)
	}
	dc.DrawStringAnchored(line, float64(r.W)/2, float64(r.H)-hudPad, 0.5, 0)
}

func (r *Renderer) healthBar(dc *gg.Context, f combat.FighterView, x, y float64) {
	dc.SetColor(ParseHexColor("#091a1f"))
	dc.DrawRectangle(x-2, y-6, hudBarW+4, 20)
	dc.Fill()
	dc.SetColor(ParseHexColor("#143036"))
	dc.DrawRectangle(x, y, hudBarW, hudBarH)
	dc.Fill()

	pct := 0.0
	if f.MaxHP > 0 {
		pct = math.Max(0, float64(f.HP)/float64(f.MaxHP))
	}
	if pct > 0 {
		dc.SetColor(ParseHexColor(f.Color))
		dc.DrawRectangle(x, y, hudBarW*pct, hudBarH)
		dc.Fill()
	}

	dc.SetColor(ParseHexColor("#d9f2ff"))
	dc.DrawString(fmt.Sprintf("%s - %s", f.ID, f.Weapon), x, y-10)
}
