package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	TypeUpdate = "UPDATE"
	TypeError  = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" мира глазами игрока после
// завершённого шага симуляции.
type ServerResponse struct {
	// Type UPDATE или ERROR. При ERROR заполнено только поле Error.
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`

	RunID    string `json:"runId,omitempty"`
	RunState string `json:"runState,omitempty"`
	// Mode какой ввод ожидается: normal, inventory, drop_menu,
	// remove_equipment, targeting, menu.
	Mode  string `json:"mode,omitempty"`
	Depth int    `json:"depth"`
	Tick  int    `json:"tick"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез исследованных тайлов. Неисследованные не отправляются.
	Map []TileView `json:"map,omitempty"`

	// Entities видимые сущности в порядке отрисовки.
	Entities []EntityView `json:"entities,omitempty"`

	// Logs последние записи журнала.
	Logs []LogEntry `json:"logs,omitempty"`

	Player    *StatsView     `json:"player,omitempty"`
	Inventory []ItemView     `json:"inventory,omitempty"`
	Equipment *EquipmentView `json:"equipment,omitempty"`
	Targeting *TargetingView `json:"targeting,omitempty"`

	// Terminal забег окончен. Transitioned в этом шаге был спуск.
	Terminal     bool `json:"terminal"`
	Transitioned bool `json:"transitioned"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление тайла (e.g. "#" для стены).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в поле зрения игрока. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден.
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
		Order  int    `json:"order"`
	} `json:"render"`
}

// StatsView характеристики игрока с учётом экипировки.
type StatsView struct {
	HP      int    `json:"hp"`
	MaxHP   int    `json:"maxHp"`
	Power   int    `json:"power"`
	Defense int    `json:"defense"`
	Hunger  string `json:"hunger,omitempty"`
	IsDead  bool   `json:"isDead"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, ERROR, SYSTEM
}

// ItemView представляет предмет для клиента. Index - позиция в меню.
type ItemView struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// EquipmentView представляет экипированные предметы
type EquipmentView struct {
	Weapon *ItemView `json:"weapon,omitempty"`
	Shield *ItemView `json:"shield,omitempty"`
}

// TargetingView - режим выбора клетки для предмета.
type TargetingView struct {
	ItemIndex int               `json:"itemIndex"`
	Range     int               `json:"range"`
	Radius    int               `json:"radius"`
	Cells     []PositionPayload `json:"cells"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: NEW_GAME, CONTINUE, MOVE, WAIT, PICKUP,
	// OPEN_INVENTORY, USE_ITEM, SELECT_TARGET, CANCEL и т.д.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Служебные действия сессии (не намерения игрока).
const (
	ActionNewGame  = "NEW_GAME"
	ActionContinue = "CONTINUE"
	ActionState    = "STATE"
)

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для SELECT_TARGET.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload используется для USE_ITEM и DROP_ITEM: позиция в меню.
type ItemPayload struct {
	Index int `json:"index"`
}

// SlotPayload используется для UNEQUIP_ITEM.
type SlotPayload struct {
	Slot string `json:"slot"`
}
