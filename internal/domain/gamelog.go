package domain

// Типы записей журнала.
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogError  = "ERROR"
	LogSystem = "SYSTEM"
)

// GameLogCapacity - сколько записей держим; старые отбрасываются.
const GameLogCapacity = 200

// LogEntry - запись журнала для игрока.
type LogEntry struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// GameLog - журнал только на добавление.
type GameLog struct {
	Entries []LogEntry `json:"entries"`
}

func NewGameLog() *GameLog {
	return &GameLog{Entries: make([]LogEntry, 0, 16)}
}

// Add дописывает запись, вытесняя самые старые при переполнении.
func (l *GameLog) Add(tick int, typ, text string) {
	l.Entries = append(l.Entries, LogEntry{Tick: tick, Text: text, Type: typ})
	if over := len(l.Entries) - GameLogCapacity; over > 0 {
		l.Entries = append(l.Entries[:0], l.Entries[over:]...)
	}
}

// Tail возвращает копию последних n записей.
func (l *GameLog) Tail(n int) []LogEntry {
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	out := make([]LogEntry, n)
	copy(out, l.Entries[len(l.Entries)-n:])
	return out
}

func (l *GameLog) Len() int {
	return len(l.Entries)
}
