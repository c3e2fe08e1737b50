package domain

// Health - Здоровье. Инвариант: 0 <= Current <= Max, Max > 0.
// Current == 0 означает смерть, сущность удаляется в ближайший MapRefresh.
type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// NewHealth создает полное здоровье.
func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}

// TakeDamage наносит урон (не ниже 0). Возвращает true, если цель погибла этим ударом.
func (h *Health) TakeDamage(amount int) bool {
	if h.IsDead() {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	h.Current -= amount

	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Heal лечит, не превышая Max. Возвращает фактически восстановленное.
func (h *Health) Heal(amount int) int {
	if h.IsDead() || amount <= 0 {
		return 0 // Не лечим трупы
	}
	before := h.Current
	h.Current = min(h.Current+amount, h.Max)
	return h.Current - before
}
