package logger

import (
	"io"
	"os"

	"parking-discount/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger обёртка над logrus с настройкой из конфигурации
type Logger struct {
	*logrus.Logger
}

// New создает логгер по конфигурации
func New(cfg *config.LoggerConfig) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	log.SetOutput(os.Stdout)
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).WithField("file", cfg.File).Warn("Failed to open log file, using stdout")
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, file))
		}
	}

	return &Logger{Logger: log}
}

// Discard возвращает логгер, который ничего не пишет
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}

// ForStore добавляет к записям идентификаторы магазина и автомобиля
func (l *Logger) ForStore(storeID, vehicle string) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"store_id": storeID,
		"vehicle":  vehicle,
	})
}
