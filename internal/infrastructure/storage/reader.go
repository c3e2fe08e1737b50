package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"cognitive-crawler/internal/domain"
)

// ErrCorruptSave - сохранение не прошло проверку целиком:
// заголовок, длина, CRC, JSON или инварианты мира.
var ErrCorruptSave = errors.New("corrupt save")

// maxBodyLen отсекает мусорные заголовки до выделения памяти.
const maxBodyLen = 64 << 20

// Decode восстанавливает мир. Никогда не возвращает частично собранный мир.
func Decode(blob []byte) (*domain.World, error) {
	return readBinary(bytes.NewReader(blob))
}

// ReadFile загружает мир из файла.
func ReadFile(path string) (*domain.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.World, error) {
	// 1. Читаем заголовок целиком
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrCorruptSave, err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrCorruptSave)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrCorruptSave, header.Version, Version1)
	}
	if header.BodyLen == 0 || header.BodyLen > maxBodyLen {
		return nil, fmt.Errorf("%w: bad body length %d", ErrCorruptSave, header.BodyLen)
	}

	// 2. Читаем тело
	body := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: truncated body: %v", ErrCorruptSave, err)
	}
	if crc32.ChecksumIEEE(body) != header.CRC {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSave)
	}

	// 3. Разбираем и проверяем мир
	w := &domain.World{}
	if err := json.Unmarshal(body, w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if w.Seed != header.Seed || w.Depth != int(header.Depth) || w.Tick != int(header.Tick) {
		return nil, fmt.Errorf("%w: header does not match body", ErrCorruptSave)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	return w, nil
}
