package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"cognitive-crawler/internal/domain"
)

const (
	MagicHeader string = `CDSV` // 4 байта
	Version1    uint32 = 1
)

// SaveFileHeader - это точное представление заголовка сохранения в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SaveFileHeader struct {
	Magic   [4]byte // 4 байта
	Version uint32  // 4 байта
	Seed    uint64  // 8 байт
	Depth   int32   // 4 байта
	Tick    int32   // 4 байта
	BodyLen uint32  // 4 байта
	CRC     uint32  // 4 байта, CRC-32 (IEEE) тела
}

// Encode сериализует мир: заголовок + JSON-тело.
func Encode(w *domain.World) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile сохраняет мир в файл (экспорт забега).
func WriteFile(path string, w *domain.World) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeBinary(f, w)
}

func writeBinary(out io.Writer, w *domain.World) error {
	// 1. Сначала тело: его длина и CRC идут в заголовок
	body, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode world: %w", err)
	}

	// 2. Подготавливаем и пишем заголовок
	header := SaveFileHeader{
		Version: Version1,
		Seed:    w.Seed,
		Depth:   int32(w.Depth),
		Tick:    int32(w.Tick),
		BodyLen: uint32(len(body)),
		CRC:     crc32.ChecksumIEEE(body),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 3. Пишем тело
	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
