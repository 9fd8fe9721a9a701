package logger

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Глобальный логгер сервиса, настраивается один раз при старте
var log = zerolog.Nop()

// Options параметры инициализации логгера
type Options struct {
	ServiceName string
	Level       string
	Pretty      bool      // человекочитаемый вывод для локальной разработки
	Writer      io.Writer // по умолчанию os.Stdout
}

// Init инициализирует логгер сервиса с выводом в stdout
func Init(serviceName string, level string) {
	Setup(Options{ServiceName: serviceName, Level: level})
}

// Setup инициализирует логгер по набору опций
func Setup(opts Options) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log = build(w, opts.ServiceName, opts.Level)
}

// InitLogstash дублирует вывод логов в Logstash по TCP
func InitLogstash(addr string, serviceName string, level string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return err
	}

	log = build(zerolog.MultiLevelWriter(os.Stdout, conn), serviceName, level)
	return nil
}

func build(w io.Writer, serviceName, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// Component возвращает дочерний логгер с полем component
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
