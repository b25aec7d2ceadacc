package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tributary-io/tributary/constants"
)

var logger zerolog.Logger

func init() {
	// usable before Init for early startup paths
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05Z"}).
		Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Init wires the process logger: console output plus a rotating file under
// CONFIG_FOLDER/logs. Level comes from LOG_LEVEL (default info).
func Init() {
	level, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05Z"},
	}

	if folder := viper.GetString(constants.ConfigFolder); folder != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(folder, "logs", "tributary.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).With().Timestamp().Logger()
}

func Debug(v ...interface{}) {
	logger.Debug().Msg(fmt.Sprint(v...))
}

func Debugf(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

func Info(v ...interface{}) {
	logger.Info().Msg(fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

func Warn(v ...interface{}) {
	logger.Warn().Msg(fmt.Sprint(v...))
}

func Warnf(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}

func Error(v ...interface{}) {
	logger.Error().Msg(fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}

func Fatal(v ...interface{}) {
	logger.Fatal().Msg(fmt.Sprint(v...))
}

func Fatalf(format string, v ...interface{}) {
	logger.Fatal().Msgf(format, v...)
}
