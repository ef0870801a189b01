package sysPrint

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	SYSTEM = "[SYSTEM]:"
	ERROR  = "[ERROR]:"
	FATAL  = "[FATAL]"
)

var (
	ErrInvalidCharacter = ErrorMsg("Word contains a character outside a-z.")
	ErrMissingInput     = ErrorMsg("Unable to open input file.")
	ErrUnknownLogLevel  = ErrorMsg("Unknown log level.")
	ErrManagerClosed    = ErrorMsg("Manager is not listening.")
	ErrSelfCheckFailed  = ErrorMsg("Trie self check failed.")
)

// LogOptions 日志输出配置
type LogOptions struct {
	Level string // debug / info / warn / error，为空时使用 info
	File  string // 日志文件路径，为空时只输出到 stderr
}

var (
	mu      sync.RWMutex
	console = zap.NewNop() // 只输出到 stderr
	file    = zap.NewNop() // 只写入日志文件
	both    = zap.NewNop() // 同时输出到 stderr 与日志文件
	logFile io.Closer
)

// Setup 根据 opts 重建包级 logger，返回供其他模块使用的 logr.Logger
func Setup(fs afero.Fs, opts LogOptions) (logr.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return logr.Discard(), errors.Join(ErrUnknownLogLevel, err)
		}
		level = l
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	fileCore := zapcore.NewNopCore()
	var closer io.Closer
	if opts.File != "" {
		f, err := fs.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return logr.Discard(), err
		}
		fileCore = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			level,
		)
		closer = f
	}
	setCores(consoleCore, fileCore, closer)
	return NewLogger(), nil
}

func setCores(consoleCore, fileCore zapcore.Core, closer io.Closer) {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = both.Sync()
		logFile.Close()
	}
	console = zap.New(consoleCore)
	file = zap.New(fileCore)
	both = zap.New(zapcore.NewTee(consoleCore, fileCore))
	logFile = closer
}

func loggers() (c, f, b *zap.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	return console, file, both
}

// NewLogger 以 logr 接口暴露当前 logger（stderr + 日志文件）
func NewLogger() logr.Logger {
	_, _, b := loggers()
	return zapr.NewLogger(b)
}

func ErrorMsg(msg string) error {
	return errors.New(ERROR + msg)
}

func PrintlnErrorMsg(msg string) {
	c, _, _ := loggers()
	c.Error(ERROR + msg)
}

func PrintlnAndLogWriteErrorMsg(msg string) {
	_, _, b := loggers()
	b.Error(ERROR + msg)
}

func LogWriteErrorMsg(msg string) {
	_, f, _ := loggers()
	f.Error(ERROR + msg)
}

func PrintlnSystemMsg(msg string) {
	c, _, _ := loggers()
	c.Info(SYSTEM + msg)
}

func PrintlnAndLogWriteSystemMsg(msg string) {
	_, _, b := loggers()
	b.Info(SYSTEM + msg)
}

func LogWriteSystemMsg(msg string) {
	_, f, _ := loggers()
	f.Info(SYSTEM + msg)
}

func PrintlnAndLogWriteFatalMsg(msg string) {
	_, _, b := loggers()
	b.Error(FATAL + msg)
}

// LogClose 刷新并关闭日志文件
func LogClose() {
	LogWriteSystemMsg("log close...")
	mu.Lock()
	defer mu.Unlock()
	_ = both.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	console, file, both = zap.NewNop(), zap.NewNop(), zap.NewNop()
}
