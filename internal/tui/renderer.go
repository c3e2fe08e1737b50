package tui

import (
	"fmt"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"

	"github.com/gdamore/tcell/v2"
)

// Затемнение исследованных, но невидимых клеток.
const fogFactor = 0.4

var (
	styleText      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleDim       = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleTitle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	styleCursor    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	targetBG       = tcell.NewRGBColor(0, 64, 96)
	logTypeColours = map[string]tcell.Color{
		domain.LogInfo:   tcell.ColorWhite,
		domain.LogCombat: tcell.ColorRed,
		domain.LogError:  tcell.ColorOrange,
		domain.LogSystem: tcell.ColorAqua,
	}
)

func toTcell(c types.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}

// Draw рисует снапшот целиком. cursor != nil только в режиме прицеливания.
func Draw(screen tcell.Screen, snap domain.GameSnapshot, cursor *domain.Point) {
	screen.Clear()

	drawMap(screen, snap)
	drawEntities(screen, snap)
	if snap.Targeting != nil && cursor != nil {
		drawTargeting(screen, snap, *cursor)
	}
	drawStatus(screen, snap)
	drawLog(screen, snap)

	switch snap.Mode {
	case domain.ModeInventory:
		drawItemMenu(screen, snap, "Использовать предмет")
	case domain.ModeDropMenu:
		drawItemMenu(screen, snap, "Выбросить предмет")
	case domain.ModeRemoveEquipment:
		drawEquipmentMenu(screen, snap)
	case domain.ModeMenu:
		drawBox(screen, "Игра сохранена", []string{
			"Esc - продолжить",
			"q   - выйти",
		})
	}
	if snap.Terminal {
		drawBox(screen, "Вы погибли", []string{
			fmt.Sprintf("Глубина: %d, ход: %d", snap.Depth, snap.Tick),
			"q - выйти, n - новая игра",
		})
	}

	screen.Show()
}

func drawMap(screen tcell.Screen, snap domain.GameSnapshot) {
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			tile := snap.TileAt(x, y)
			if !tile.Revealed {
				continue
			}
			c := tile.Kind.Color()
			if !tile.Visible {
				c = c.Scale(fogFactor)
			}
			screen.SetContent(x, y, tile.Kind.Glyph(), nil,
				tcell.StyleDefault.Foreground(toTcell(c)).Background(tcell.ColorBlack))
		}
	}
}

// drawEntities рисует в обратном порядке: RenderOrder 0 (игрок) - последним, поверх.
func drawEntities(screen tcell.Screen, snap domain.GameSnapshot) {
	for i := len(snap.Renderables) - 1; i >= 0; i-- {
		r := snap.Renderables[i]
		style := tcell.StyleDefault.Foreground(toTcell(r.FG)).Background(toTcell(r.BG))
		screen.SetContent(r.X, r.Y, r.Glyph, nil, style)
	}
}

func drawTargeting(screen tcell.Screen, snap domain.GameSnapshot, cursor domain.Point) {
	for _, p := range snap.Targeting.Cells {
		mainc, combc, style, _ := screen.GetContent(p.X, p.Y)
		screen.SetContent(p.X, p.Y, mainc, combc, style.Background(targetBG))
	}
	mainc, combc, _, _ := screen.GetContent(cursor.X, cursor.Y)
	screen.SetContent(cursor.X, cursor.Y, mainc, combc, styleCursor)
}

func drawStatus(screen tcell.Screen, snap domain.GameSnapshot) {
	line := fmt.Sprintf("Глубина %d  HP %d/%d  Сила %d  Защита %d  Ход %d",
		snap.Depth, snap.PlayerHP, snap.PlayerMaxHP, snap.PlayerPower, snap.PlayerDefense, snap.Tick)
	if snap.Hunger != "" && snap.Hunger != domain.HungerNormal && snap.Hunger != domain.HungerWellFed {
		line += "  " + hungerLabel(snap.Hunger)
	}
	drawText(screen, 0, snap.Height, line, styleTitle)
}

func hungerLabel(h domain.HungerState) string {
	switch h {
	case domain.HungerHungry:
		return "Голоден"
	case domain.HungerStarving:
		return "Истощён"
	default:
		return string(h)
	}
}

func drawLog(screen tcell.Screen, snap domain.GameSnapshot) {
	for i, entry := range snap.LogTail {
		colour, ok := logTypeColours[entry.Type]
		if !ok {
			colour = tcell.ColorWhite
		}
		drawText(screen, 0, snap.Height+1+i, entry.Text, tcell.StyleDefault.Foreground(colour))
	}
}

func drawItemMenu(screen tcell.Screen, snap domain.GameSnapshot, title string) {
	lines := make([]string, 0, len(snap.Inventory)+1)
	for i, item := range snap.Inventory {
		lines = append(lines, fmt.Sprintf("(%c) %s", 'a'+i, item.Name))
	}
	if len(lines) == 0 {
		lines = append(lines, "Пусто.")
	}
	drawBox(screen, title, append(lines, "Esc - отмена"))
}

func drawEquipmentMenu(screen tcell.Screen, snap domain.GameSnapshot) {
	lines := make([]string, 0, len(domain.EquipmentSlots)+1)
	for i, slot := range domain.EquipmentSlots {
		name := "-"
		if item, ok := snap.Equipped[slot]; ok {
			name = item.Name
		}
		lines = append(lines, fmt.Sprintf("(%c) %s: %s", 'a'+i, slotLabel(slot), name))
	}
	drawBox(screen, "Снять экипировку", append(lines, "Esc - отмена"))
}

func slotLabel(s domain.EquipmentSlot) string {
	switch s {
	case domain.SlotWeapon:
		return "Оружие"
	case domain.SlotShield:
		return "Щит"
	default:
		return string(s)
	}
}

// drawBox рисует окно по центру экрана.
func drawBox(screen tcell.Screen, title string, lines []string) {
	sw, sh := screen.Size()
	width := len([]rune(title)) + 4
	for _, l := range lines {
		if n := len([]rune(l)) + 4; n > width {
			width = n
		}
	}
	height := len(lines) + 2
	x0, y0 := (sw-width)/2, (sh-height)/2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			r := ' '
			switch {
			case (y == y0 || y == y0+height-1) && (x == x0 || x == x0+width-1):
				r = '+'
			case y == y0 || y == y0+height-1:
				r = '-'
			case x == x0 || x == x0+width-1:
				r = '|'
			}
			screen.SetContent(x, y, r, nil, styleDim)
		}
	}
	drawText(screen, x0+2, y0, title, styleTitle)
	for i, l := range lines {
		drawText(screen, x0+2, y0+1+i, l, styleText)
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
