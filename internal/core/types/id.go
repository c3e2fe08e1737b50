package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор сущности.
//
// Формат битов (от старших к младшим):
//
//	[ reserved (16) | Generation (16) | Index (32) ]
//
// Generation увеличивается при повторном использовании слота, поэтому
// ссылка на уничтоженную сущность не совпадёт с новым владельцем слота.
type EntityID uint64

// NilEntityID - нулевой идентификатор, аналог nil.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 16

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackEntityID собирает EntityID из поколения и индекса слота.
// Индекс 0 зарезервирован за NilEntityID, аллокатор выдаёт слоты с 1.
func PackEntityID(gen uint16, index uint32) EntityID {
	return EntityID((uint64(gen) << shiftGen) | uint64(index))
}

// Index возвращает индекс слота.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String предназначен для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("#%d.%d", id.Index(), id.Generation())
}

// MarshalJSON пишет ID строкой, чтобы JS-клиент не терял точность uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
