package systems

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisibleTiles возвращает набор клеток, видимых из origin в пределах radius.
// Рекурсивный shadowcasting по 8 октантам; результат зависит только от карты,
// точки и радиуса, поэтому повторный вызов даёт тот же набор.
func ComputeVisibleTiles(m *domain.Map, origin domain.Point, radius int) mapset.Set[domain.Point] {
	visible := mapset.New[domain.Point]()
	if radius <= 0 || !m.InBounds(origin) {
		return visible // Слепой
	}

	// 1. Центр всегда виден
	visible.Put(origin)

	// 2. Запускаем рекурсивный Shadowcasting для 8 октантов
	for i := 0; i < 8; i++ {
		castLight(m, origin.X, origin.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}

	return visible
}

func castLight(m *domain.Map, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visible mapset.Set[domain.Point]) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			p := domain.Point{X: cx + dx*xx + dy*xy, Y: cy + dx*yx + dy*yy}

			// Проверка границ и радиуса (граница радиуса включительно)
			if m.InBounds(p) && float64(dx*dx+dy*dy) <= radiusSq {
				visible.Put(p)
			}

			// Логика теней
			if blocked {
				if m.IsOpaque(p) {
					newStart = rSlope
					continue
				}
				// Стена кончилась, началась пустота
				blocked = false
				start = newStart
			} else if m.IsOpaque(p) && j < radius {
				// Наткнулись на стену: сканируем следующий ряд под ней
				blocked = true
				castLight(m, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// RefreshViewsheds пересчитывает только устаревшие (Dirty) зоны видимости,
// затем собирает Tile.Visible как объединение всех зон. Открытыми (Revealed)
// клетки делает только зрение игрока. Возвращает число пересчитанных зон.
func RefreshViewsheds(w *domain.World) int {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component": "fov_system",
		"tick":      w.Tick,
	})

	observers := w.Query(func(e *domain.Entity) bool {
		return e.Viewshed != nil && e.Position != nil
	})

	recomputed := 0
	for _, e := range observers {
		vs := e.Viewshed
		if !vs.Dirty {
			continue
		}
		vs.Replace(ComputeVisibleTiles(w.Map, e.Position.Point(), vs.Range))
		recomputed++

		if e.Player != nil {
			vs.Visible.Each(func(p domain.Point) {
				w.Map.TileAt(p).Revealed = true
			})
		}
	}

	// Объединённая видимость кадра
	for i := range w.Map.Tiles {
		w.Map.Tiles[i].Visible = false
	}
	for _, e := range observers {
		e.Viewshed.Visible.Each(func(p domain.Point) {
			if t := w.Map.TileAt(p); t != nil {
				t.Visible = true
			}
		})
	}

	if recomputed > 0 {
		fovLogger.WithField("recomputed", recomputed).Debug("Viewsheds refreshed.")
	}
	return recomputed
}
