package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// Создаётся сразу, чтобы пакеты могли логировать и до Init (например, в тестах).
var Log = logrus.New()

// Init настраивает глобальный логгер.
// Вызывается один раз при старте приложения, уровень и формат приходят из config.
func Init(level, format string) {
	// 1. Уровень логирования. По умолчанию - "info".
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// 2. Форматтер.
	// "json" - для сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// 3. Пишем в stderr: stdout может быть занят терминальным интерфейсом.
	Log.SetOutput(os.Stderr)
}

// SetOutput перенаправляет логи (tcell-фронтенд пишет их в файл).
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Component возвращает запись с полем component, как принято во всех системах.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
