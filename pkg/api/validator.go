package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.Index < 0 {
		return errors.New("item index must not be negative")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	if p.Slot == "" {
		return errors.New("slot is required")
	}
	return nil
}
