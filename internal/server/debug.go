package server

import (
	"net/http"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Bridge *Bridge
}

func NewDebugHandler(b *Bridge) *DebugHandler {
	return &DebugHandler{Bridge: b}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorld)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/monsters", h.handleMonsters)
}

// /debug/world - сводка по текущему забегу
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	type WorldSummary struct {
		RunID       string `json:"run_id"`
		Seed        uint64 `json:"seed"`
		Depth       int    `json:"depth"`
		Tick        int    `json:"tick"`
		RunState    string `json:"run_state"`
		Mode        string `json:"mode"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		EntityCount int    `json:"entity_count"`
		Crashed     string `json:"crashed,omitempty"`
	}

	var summary WorldSummary
	ok := h.Bridge.WithSession(func(s *engine.Session) {
		summary = WorldSummary{
			RunID:       s.World.RunID.String(),
			Seed:        s.World.Seed,
			Depth:       s.World.Depth,
			Tick:        s.World.Tick,
			RunState:    string(s.State()),
			Mode:        string(s.Mode()),
			Width:       s.World.Map.Width,
			Height:      s.World.Map.Height,
			EntityCount: s.World.Len(),
		}
		if err := s.Crashed(); err != nil {
			summary.Crashed = err.Error()
		}
	})
	if !ok {
		http.Error(w, ErrNoSession.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, summary)
}

// /debug/entities - дамп всех сущностей (включая скрытые ловушки и AI)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	var entities []*domain.Entity
	ok := h.Bridge.WithSession(func(s *engine.Session) {
		entities = s.World.Query(nil)
	})
	if !ok {
		http.Error(w, ErrNoSession.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, entities)
}

// /debug/monsters - состояние ИИ в порядке ходов
func (h *DebugHandler) handleMonsters(w http.ResponseWriter, r *http.Request) {
	type MonsterView struct {
		EntityID    string         `json:"entity_id"`
		Name        string         `json:"name"`
		Pos         domain.Point   `json:"pos"`
		State       domain.AIState `json:"state"`
		LastKnown   domain.Point   `json:"last_known"`
		PursuitLeft int            `json:"pursuit_left"`
		Confused    int            `json:"confused,omitempty"`
	}

	monsters := make([]MonsterView, 0)
	ok := h.Bridge.WithSession(func(s *engine.Session) {
		for _, m := range s.World.Monsters() {
			p, _ := m.Point()
			view := MonsterView{
				EntityID:    m.ID.String(),
				Name:        m.DisplayName(),
				Pos:         p,
				State:       m.MonsterAI.State,
				LastKnown:   m.MonsterAI.LastKnown,
				PursuitLeft: m.MonsterAI.PursuitLeft,
			}
			if m.Confusion != nil {
				view.Confused = m.Confusion.Turns
			}
			monsters = append(monsters, view)
		}
	})
	if !ok {
		http.Error(w, ErrNoSession.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, monsters)
}
