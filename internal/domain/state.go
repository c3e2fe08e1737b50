package domain

// RunState - фаза планировщика ходов.
type RunState string

const (
	RunAwaitingInput   RunState = "awaiting_input"
	RunPlayerTurn      RunState = "player_turn"
	RunMonsterTurn     RunState = "monster_turn"
	RunMapRefresh      RunState = "map_refresh"
	RunLevelTransition RunState = "level_transition"
	RunGameOver        RunState = "game_over"
	RunPaused          RunState = "paused"
)

// InputMode - какой ввод сейчас ожидается от слоя представления.
type InputMode string

const (
	ModeNormal          InputMode = "normal"
	ModeInventory       InputMode = "inventory"
	ModeDropMenu        InputMode = "drop_menu"
	ModeRemoveEquipment InputMode = "remove_equipment"
	ModeTargeting       InputMode = "targeting"
	ModeMenu            InputMode = "menu"
)
