package domain

import (
	"encoding/json"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// VisionRadius - дальность зрения по умолчанию.
const VisionRadius = 8

// Viewshed - кэш видимых клеток. Dirty выставляется при движении
// или смене карты и заставляет систему FOV пересчитать набор.
type Viewshed struct {
	Visible mapset.Set[Point]
	Range   int
	Dirty   bool
}

func NewViewshed(radius int) *Viewshed {
	return &Viewshed{Visible: mapset.New[Point](), Range: radius, Dirty: true}
}

// CanSee проверяет клетку по кэшу (без пересчёта).
func (v *Viewshed) CanSee(p Point) bool {
	return v.Visible.Has(p)
}

// Replace подменяет набор целиком и снимает флаг Dirty.
func (v *Viewshed) Replace(visible mapset.Set[Point]) {
	v.Visible = visible
	v.Dirty = false
}

// Sorted возвращает клетки в порядке строк (Y, затем X).
func (v *Viewshed) Sorted() []Point {
	out := make([]Point, 0, v.Visible.Size())
	v.Visible.Each(func(p Point) {
		out = append(out, p)
	})
	slices.SortFunc(out, ComparePoints)
	return out
}

// ComparePoints - порядок строк, общий для сериализации и снапшотов.
func ComparePoints(a, b Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

type viewshedJSON struct {
	Visible []Point `json:"visible"`
	Range   int     `json:"range"`
	Dirty   bool    `json:"dirty"`
}

// MarshalJSON пишет набор отсортированным, чтобы сохранение было детерминированным.
func (v Viewshed) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewshedJSON{Visible: v.Sorted(), Range: v.Range, Dirty: v.Dirty})
}

func (v *Viewshed) UnmarshalJSON(data []byte) error {
	var raw viewshedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Visible = mapset.New[Point]()
	for _, p := range raw.Visible {
		v.Visible.Put(p)
	}
	v.Range = raw.Range
	v.Dirty = raw.Dirty
	return nil
}
