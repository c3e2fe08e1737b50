package agent

import (
	"context"
	"fmt"
	"sort"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/internal/systems"
	"cognitive-crawler/pkg/dungeon"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Сколько ближайших клеток границы исследования проверяем поиском пути.
const frontierCandidates = 8

// Bot - игрок-компьютер (headless agent). Видит только снапшот, как
// человек за терминалом, и отвечает намерениями через тот же GameService.
//
// Приоритеты хода:
//  1. Закрыть меню или прицеливание.
//  2. Подлечиться или поесть.
//  3. Атаковать видимого монстра.
//  4. Подобрать предмет под ногами.
//  5. Идти к лестнице, если она уже найдена.
//  6. Исследовать ближайшую границу тумана.
type Bot struct {
	log *logrus.Entry
}

// Report - итог автоигры.
type Report struct {
	Steps int  `json:"steps"`
	Depth int  `json:"depth"`
	Tick  int  `json:"tick"`
	HP    int  `json:"hp"`
	Dead  bool `json:"dead"`
}

func (r Report) String() string {
	return fmt.Sprintf("steps=%d depth=%d tick=%d hp=%d dead=%v", r.Steps, r.Depth, r.Tick, r.HP, r.Dead)
}

func NewBot() *Bot {
	return &Bot{log: logger.Log.WithField("component", "bot")}
}

// Play ведёт забег до смерти игрока или maxSteps намерений.
func (b *Bot) Play(ctx context.Context, service *engine.GameService, session *engine.Session, maxSteps int) (Report, error) {
	snap := session.Snapshot()
	var report Report

	for report.Steps < maxSteps && !snap.Terminal {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		intent := b.Decide(snap)
		next, err := service.Advance(ctx, session, intent)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", report.Steps, intent.Kind, err)
		}
		snap = next
		report.Steps++

		if snap.Transitioned {
			b.log.WithFields(logrus.Fields{"depth": snap.Depth, "tick": snap.Tick}).Info("Bot descended")
		}
	}

	report.Depth = snap.Depth
	report.Tick = snap.Tick
	report.HP = snap.PlayerHP
	report.Dead = snap.Terminal
	b.log.WithField("report", report.String()).Info("Autoplay finished")
	return report, nil
}

// Decide выбирает следующее намерение по снапшоту.
func (b *Bot) Decide(snap domain.GameSnapshot) domain.PlayerIntent {
	// 1. Любой режим кроме обычного закрываем
	if snap.Mode != domain.ModeNormal {
		return domain.Cancel()
	}

	me, ok := playerPos(snap)
	if !ok {
		return domain.Wait()
	}

	// 2. Расходники
	if snap.PlayerHP*2 <= snap.PlayerMaxHP {
		if idx := findItem(snap, dungeon.HealthPotion.Name); idx >= 0 {
			return domain.UseItem(idx)
		}
	}
	if snap.Hunger == domain.HungerHungry || snap.Hunger == domain.HungerStarving {
		if idx := findItem(snap, dungeon.Rations.Name); idx >= 0 {
			return domain.UseItem(idx)
		}
	}

	local := localMap(snap)

	// 3. Ближайший видимый монстр
	var targets []domain.Point
	for _, r := range snap.Renderables {
		if r.RenderOrder == domain.RenderOrderMonster {
			targets = append(targets, domain.Point{X: r.X, Y: r.Y})
		}
	}
	sortByDistance(targets, me)
	for _, t := range targets {
		if intent, ok := stepAlong(local, me, t); ok {
			return intent
		}
	}

	// 4. Предмет под ногами
	if len(snap.Inventory) < domain.InventoryCapacity {
		for _, r := range snap.Renderables {
			if r.RenderOrder == domain.RenderOrderItem && r.X == me.X && r.Y == me.Y {
				return domain.PickUp()
			}
		}
	}

	// 5. Лестница
	if stairs, ok := findStairs(snap); ok {
		if stairs == me {
			return domain.DescendStairs()
		}
		if intent, ok := stepAlong(local, me, stairs); ok {
			return intent
		}
	}

	// 6. Граница тумана
	frontier := findFrontier(snap)
	sortByDistance(frontier, me)
	for i, p := range frontier {
		if i >= frontierCandidates {
			break
		}
		if intent, ok := stepAlong(local, me, p); ok {
			return intent
		}
	}

	b.log.WithField("tick", snap.Tick).Debug("Nothing to do, waiting")
	return domain.Wait()
}

func playerPos(snap domain.GameSnapshot) (domain.Point, bool) {
	for _, r := range snap.Renderables {
		if r.RenderOrder == domain.RenderOrderPlayer {
			return domain.Point{X: r.X, Y: r.Y}, true
		}
	}
	return domain.Point{}, false
}

func findItem(snap domain.GameSnapshot, name string) int {
	for i, item := range snap.Inventory {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// localMap восстанавливает карту по тому, что игрок видел.
// Нераскрытые клетки считаются стенами, монстры блокируют проход.
func localMap(snap domain.GameSnapshot) *domain.Map {
	m := domain.NewMap(snap.Width, snap.Height, snap.Depth)
	for i, tile := range snap.Tiles {
		if tile.Revealed {
			m.Tiles[i].Kind = tile.Kind
		}
	}
	for _, r := range snap.Renderables {
		if r.RenderOrder == domain.RenderOrderMonster {
			m.Blocked[m.Index(r.X, r.Y)] = true
		}
	}
	return m
}

func findStairs(snap domain.GameSnapshot) (domain.Point, bool) {
	for i, tile := range snap.Tiles {
		if tile.Revealed && tile.Kind == domain.TileDownStairs {
			return domain.Point{X: i % snap.Width, Y: i / snap.Width}, true
		}
	}
	return domain.Point{}, false
}

// findFrontier - раскрытые проходимые клетки рядом с нераскрытыми.
func findFrontier(snap domain.GameSnapshot) []domain.Point {
	var out []domain.Point
	for i, tile := range snap.Tiles {
		if !tile.Revealed || tile.Kind == domain.TileWall {
			continue
		}
		p := domain.Point{X: i % snap.Width, Y: i / snap.Width}
		for _, d := range []domain.Direction{domain.DirNorth, domain.DirSouth, domain.DirWest, domain.DirEast} {
			dx, dy := d.Delta()
			n := p.Add(dx, dy)
			if n.X < 0 || n.Y < 0 || n.X >= snap.Width || n.Y >= snap.Height {
				continue
			}
			if !snap.TileAt(n.X, n.Y).Revealed {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// stepAlong - первый шаг пути к цели. Шаг в монстра становится атакой.
func stepAlong(m *domain.Map, from, to domain.Point) (domain.PlayerIntent, bool) {
	path := systems.FindPath(m, from, to)
	if len(path) == 0 {
		return domain.PlayerIntent{}, false
	}
	d := domain.DirectionFromDelta(path[0].X-from.X, path[0].Y-from.Y)
	if !d.Valid() {
		return domain.PlayerIntent{}, false
	}
	return domain.Move(d), true
}

// sortByDistance упорядочивает точки по удалённости, при равенстве - по координатам.
func sortByDistance(points []domain.Point, from domain.Point) {
	sort.Slice(points, func(i, j int) bool {
		di, dj := points[i].Manhattan(from), points[j].Manhattan(from)
		if di != dj {
			return di < dj
		}
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}
