package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger struct to hold leveled loggers and configuration
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	output      io.Writer
	level       LogLevel
	prefix      string
	mutex       sync.Mutex
}

// LogLevel defines the logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// Global logger instance
var GlobalLogger *Logger
var once sync.Once

// InitLogger initializes the global logger with the specified output and log level
func InitLogger(output io.Writer, level string) {
	once.Do(func() {
		if output == nil {
			output = os.Stdout
		}

		logLevel := INFO
		switch strings.ToUpper(level) {
		case "DEBUG":
			logLevel = DEBUG
		case "WARN":
			logLevel = WARN
		case "ERROR":
			logLevel = ERROR
		case "INFO":
			logLevel = INFO
		}

		GlobalLogger = &Logger{
			infoLogger:  log.New(output, color.GreenString("INFO: "), log.Ldate|log.Ltime),
			warnLogger:  log.New(output, color.YellowString("WARN: "), log.Ldate|log.Ltime),
			errorLogger: log.New(output, color.RedString("ERROR: "), log.Ldate|log.Ltime),
			debugLogger: log.New(output, color.BlueString("DEBUG: "), log.Ldate|log.Ltime),
			output:      output,
			level:       logLevel,
		}
	})
}

// WithPrefix returns a logger that prepends the given tag to every message.
// Providers use this so their log lines carry the provider name.
func (l *Logger) WithPrefix(tag string) *Logger {
	return &Logger{
		infoLogger:  l.infoLogger,
		warnLogger:  l.warnLogger,
		errorLogger: l.errorLogger,
		debugLogger: l.debugLogger,
		output:      l.output,
		level:       l.level,
		prefix:      "[" + tag + "] ",
	}
}

// Println logs a message at the INFO level
func (l *Logger) Println(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= INFO {
		if l.prefix != "" {
			v = append([]interface{}{strings.TrimSpace(l.prefix)}, v...)
		}
		l.infoLogger.Println(v...)
	}
}

// Printf logs a formatted message at the INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= INFO {
		l.infoLogger.Printf(l.prefix+format, v...)
	}
}

// Warnf logs a formatted message at the WARN level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= WARN {
		l.warnLogger.Printf(l.prefix+format, v...)
	}
}

// Error logs a message at the ERROR level
func (l *Logger) Error(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= ERROR {
		if l.prefix != "" {
			v = append([]interface{}{strings.TrimSpace(l.prefix)}, v...)
		}
		l.errorLogger.Println(v...)
	}
}

// Errorf logs a formatted message at the ERROR level
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= ERROR {
		l.errorLogger.Printf(l.prefix+format, v...)
	}
}

// Debug logs a message at the DEBUG level
func (l *Logger) Debug(v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= DEBUG {
		if l.prefix != "" {
			v = append([]interface{}{strings.TrimSpace(l.prefix)}, v...)
		}
		l.debugLogger.Println(v...)
	}
}

// Debugf logs a formatted message at the DEBUG level
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= DEBUG {
		l.debugLogger.Printf(l.prefix+format, v...)
	}
}
