package dungeon

import (
	"errors"
	"fmt"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Константы генерации
const (
	MaxRooms      = 30
	MinRooms      = 4
	MinSize       = 6
	MaxSize       = 10
	SpawnAttempts = 20
	maxRetries    = 64

	// Меньшие карты не вмещают MinRooms комнат; GenerateSized
	// растягивает запрошенный размер до этих границ.
	MinWidth  = 40
	MinHeight = 25
)

var ErrUnknownTemplate = errors.New("unknown spawn template")

// Spawn - запись о том, что поставить и куда.
type Spawn struct {
	Template string       `json:"template"`
	At       domain.Point `json:"at"`
}

// Level - результат генерации одного уровня.
type Level struct {
	Map    *domain.Map
	Spawns []Spawn
	Start  domain.Point
	Seed   uint64

	// Builder - имя стартового построителя (для логов и отладки).
	Builder string
}

// LevelSeed выводит сид уровня из сида забега и глубины.
func LevelSeed(master uint64, depth int) uint64 {
	return domain.Mix(master + uint64(depth))
}

// Generate создает уровень стандартного размера.
func Generate(depth int, master uint64) Level {
	return GenerateSized(domain.MapWidth, domain.MapHeight, depth, master)
}

// GenerateSized создает уровень заданного размера. Детерминирован:
// одинаковые (размер, глубина, сид) дают одинаковый уровень.
// Размер меньше MinWidth x MinHeight растягивается до минимума.
// Стартовый построитель выбирается по RNG уровня, затем идут
// DefaultPasses. Если комнат получилось меньше MinRooms, уровень
// пересоздаётся со свежим сидом, выведенным из неудачного.
func GenerateSized(width, height, depth int, master uint64) Level {
	genLogger := logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"depth":     depth,
	})

	if width < MinWidth || height < MinHeight {
		genLogger.WithFields(logrus.Fields{
			"width":  width,
			"height": height,
		}).Debug("Map size below minimum, clamping.")
		width = max(width, MinWidth)
		height = max(height, MinHeight)
	}

	seed := LevelSeed(master, depth)
	var level Level
	for attempt := 0; attempt < maxRetries; attempt++ {
		level = NewLevel(depth, seed).
			WithSize(width, height).
			RandomStarter().
			With(DefaultPasses(depth)...).
			Build()

		if len(level.Map.Rooms) >= MinRooms {
			genLogger.WithFields(logrus.Fields{
				"builder": level.Builder,
				"rooms":   len(level.Map.Rooms),
				"spawns":  len(level.Spawns),
				"retries": attempt,
			}).Debug("Level generated.")
			return level
		}

		genLogger.WithFields(logrus.Fields{
			"builder": level.Builder,
			"rooms":   len(level.Map.Rooms),
			"seed":    seed,
		}).Debug("Too few rooms, regenerating.")
		seed = domain.Mix(seed + 1)
	}

	genLogger.Warn("Room minimum not reached, keeping the last layout.")
	return level
}

// Populate создает сущности уровня в мире. Карта уже должна быть
// установлена через World.ReplaceMap.
func Populate(w *domain.World, level Level) ([]types.EntityID, error) {
	ids := make([]types.EntityID, 0, len(level.Spawns))
	for _, s := range level.Spawns {
		tpl, ok := Templates[s.Template]
		if !ok {
			return ids, fmt.Errorf("populate %q: %w", s.Template, ErrUnknownTemplate)
		}
		ids = append(ids, w.Spawn(tpl.Spawn(s.At)))
	}
	return ids, nil
}
