package actions

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleUse применяет предмет. Предмет с прицеливанием без выбранной
// клетки не тратит ход, а просит движок включить режим прицеливания.
func HandleUse(ctx handlers.Context, item *domain.Entity) (handlers.Result, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"actor_id":  ctx.Actor.ID,
		"item_id":   item.ID,
	})

	if item.Item != nil && item.Item.Targeted != nil && ctx.Target == nil {
		req := &handlers.TargetRequest{
			ItemIndex: ctx.Intent.Index,
			Range:     item.Item.Targeted.Range,
		}
		if item.Item.AreaOfEffect != nil {
			req.Radius = item.Item.AreaOfEffect.Radius
		}
		log.Debug("Item needs a target, entering targeting mode")
		return handlers.Result{Targeting: req}, nil
	}

	if err := systems.UseItem(ctx.World, ctx.Actor, item, ctx.Target); err != nil {
		return handlers.EmptyResult(), err
	}

	log.Debug("Item used successfully")
	return handlers.Turn(), nil
}
