package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar enables debug logging without passing --verbose.
const EnvVar = "SCHEMACHECK_DEBUG"

// Level defines verbosity
type Level int

const (
	LevelQuiet Level = iota
	LevelDebug
	LevelTrace
)

// LevelFromEnv reads the level from SCHEMACHECK_DEBUG.
func LevelFromEnv() Level {
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case "1", "true", "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	}
	return LevelQuiet
}

// Resolve combines the --verbose flag with the environment. The more
// verbose of the two wins.
func Resolve(verbose bool) Level {
	level := LevelFromEnv()
	if verbose && level < LevelDebug {
		level = LevelDebug
	}
	return level
}

// New builds a console logger writing to w. Quiet loggers only emit
// warnings and errors; trace adds caller information.
func New(level Level, w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	minLevel := zapcore.WarnLevel
	if level >= LevelDebug {
		minLevel = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(minLevel),
	)

	var opts []zap.Option
	if level >= LevelTrace {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}

// Setup installs a stderr logger as the zap global and returns it with a
// function restoring the previous globals.
func Setup(verbose bool) (*zap.Logger, func()) {
	logger := New(Resolve(verbose), os.Stderr)
	undo := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		undo()
	}
}
