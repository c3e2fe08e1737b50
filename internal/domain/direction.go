package domain

// Direction - одно из 8 направлений движения.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
)

var directionDeltas = map[Direction][2]int{
	DirNorth:     {0, -1},
	DirNorthEast: {1, -1},
	DirEast:      {1, 0},
	DirSouthEast: {1, 1},
	DirSouth:     {0, 1},
	DirSouthWest: {-1, 1},
	DirWest:      {-1, 0},
	DirNorthWest: {-1, -1},
}

var directionNames = map[Direction]string{
	DirNorth:     "N",
	DirNorthEast: "NE",
	DirEast:      "E",
	DirSouthEast: "SE",
	DirSouth:     "S",
	DirSouthWest: "SW",
	DirWest:      "W",
	DirNorthWest: "NW",
}

// Delta возвращает смещение (dx, dy). Для неизвестного направления - (0, 0).
func (d Direction) Delta() (int, int) {
	v := directionDeltas[d]
	return v[0], v[1]
}

func (d Direction) Valid() bool {
	_, ok := directionDeltas[d]
	return ok
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "NONE"
}

// ParseDirection разбирает "N", "NE", ... (используется WebSocket-мостом).
func ParseDirection(s string) Direction {
	for d, name := range directionNames {
		if name == s {
			return d
		}
	}
	return DirNone
}

// DirectionFromDelta обратна Delta.
func DirectionFromDelta(dx, dy int) Direction {
	for d, v := range directionDeltas {
		if v[0] == dx && v[1] == dy {
			return d
		}
	}
	return DirNone
}
