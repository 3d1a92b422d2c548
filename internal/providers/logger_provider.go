package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"brickdeals/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypePipeline
	TypePush
)

func (t TypeEnum) String() string {
	switch t {
	case TypeGet:
		return "get"
	case TypePost:
		return "post"
	case TypePipeline:
		return "pipeline"
	case TypePush:
		return "push"
	default:
		return "app"
	}
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger)}
	for _, t := range []TypeEnum{TypeApp, TypeGet, TypePost, TypePipeline, TypePush} {
		path := filepath.Join(conf.Logger.Dir, t.String()+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, file)

		var out io.Writer = file
		if conf.Debug {
			out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		lp.loggers[t] = zerolog.New(out).Level(level).With().Timestamp().Str("type", t.String()).Logger()
	}
	return lp, nil
}

func (lp *LogProvider) get(t TypeEnum) zerolog.Logger {
	if l, ok := lp.loggers[t]; ok {
		return l
	}
	return lp.loggers[TypeApp]
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l := lp.get(t)
	l.Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l := lp.get(t)
	l.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l := lp.get(t)
	l.Info().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l := lp.get(t)
	l.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l := lp.get(t)
	l.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
}
