package engine

import (
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/systems"
	"cognitive-crawler/pkg/dungeon"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// NewRun создает мир нового забега: первый уровень, игрок на старте,
// монстры и предметы по таблице спавна, посчитанное поле зрения.
func NewRun(seed uint64, width, height int) (*domain.World, error) {
	// 1. Генерируем уровень 1
	level := dungeon.GenerateSized(width, height, 1, seed)

	// 2. Создаем мир и игрока
	w := domain.NewWorld(seed)
	w.ReplaceMap(level.Map)
	w.Spawn(dungeon.CreatePlayer(level.Start))

	// 3. Регистрируем сущностей уровня
	spawned, err := dungeon.Populate(w, level)
	if err != nil {
		return nil, fmt.Errorf("populate level 1: %w", err)
	}

	systems.RefreshViewsheds(w)
	w.Logf(domain.LogInfo, "Добро пожаловать в подземелье.")

	if err := w.Validate(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"run_id":    w.RunID,
		"seed":      seed,
		"entities":  len(spawned) + 1,
	}).Info("New run created")
	return w, nil
}
