package domain

import (
	"cognitive-crawler/internal/core/types"
)

// LogTailSize - сколько последних записей журнала попадает в снапшот.
const LogTailSize = 8

// TileView - клетка, как её видит игрок. Visible - в поле зрения игрока,
// Lit - в поле зрения хоть кого-то (объединённая видимость).
type TileView struct {
	Kind     TileKind `json:"kind"`
	Revealed bool     `json:"revealed"`
	Visible  bool     `json:"visible"`
	Lit      bool     `json:"lit,omitempty"`
}

// RenderableView - видимая сущность на карте.
type RenderableView struct {
	ID          types.EntityID `json:"id"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Glyph       rune           `json:"glyph"`
	FG          types.Color    `json:"fg"`
	BG          types.Color    `json:"bg"`
	RenderOrder int            `json:"renderOrder"`
	Name        string         `json:"name"`
}

// ItemView - предмет в меню.
type ItemView struct {
	ID       types.EntityID `json:"id"`
	Name     string         `json:"name"`
	Equipped bool           `json:"equipped"`
}

// TargetingView - режим выбора цели.
type TargetingView struct {
	ItemIndex int     `json:"itemIndex"`
	Range     int     `json:"range"`
	Radius    int     `json:"radius"`
	Cells     []Point `json:"cells"` // допустимые клетки
}

// GameSnapshot - неизменяемый срез мира после завершённого шага.
type GameSnapshot struct {
	RunID    string    `json:"runId"`
	RunState RunState  `json:"runState"`
	Mode     InputMode `json:"mode"`
	Depth    int       `json:"depth"`
	Tick     int       `json:"tick"`

	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []TileView `json:"tiles"`

	Renderables []RenderableView `json:"renderables"`
	LogTail     []LogEntry       `json:"log"`

	PlayerHP      int         `json:"playerHp"`
	PlayerMaxHP   int         `json:"playerMaxHp"`
	PlayerPower   int         `json:"playerPower"`
	PlayerDefense int         `json:"playerDefense"`
	Hunger        HungerState `json:"hunger,omitempty"`

	Inventory []ItemView                 `json:"inventory"`
	Equipped  map[EquipmentSlot]ItemView `json:"equipped"`
	Targeting *TargetingView             `json:"targeting,omitempty"`

	// Terminal - забег окончен (GameOver). Transitioned - в этом шаге был спуск.
	Terminal     bool `json:"terminal"`
	Transitioned bool `json:"transitioned"`
}

// TileAt - клетка снапшота по координатам.
func (s *GameSnapshot) TileAt(x, y int) TileView {
	return s.Tiles[y*s.Width+x]
}
