package internal

import (
	"fmt"
	"log"
	"lodgepay/services"
	"time"
)

// LogMessage is the structured record written to the database log sink.
type LogMessage struct {
	Time   time.Time `json:"time" bson:"time"`
	Level  string    `json:"level" bson:"level"`
	Module string    `json:"module" bson:"module"`
	Text   string    `json:"text" bson:"text"`
	Err    string    `json:"error,omitempty" bson:"error,omitempty"`
}

func (m *LogMessage) DataType() string {
	return "log"
}

// Logger writes leveled messages to stdout and, when a database is
// attached, mirrors them to the log collection. Debug messages are
// dropped unless debug mode is on and are never persisted.
type Logger struct {
	module string
	debug  bool
	db     services.Database
}

func NewLogger(module string, debug bool, db services.Database) *Logger {
	return &Logger{
		module: module,
		debug:  debug,
		db:     db,
	}
}

func (l *Logger) Debug(message string) {
	if !l.debug {
		return
	}
	log.Printf("DEBUG\t%s: %s", l.module, message)
}

func (l *Logger) Info(message string) {
	log.Printf("INFO\t%s: %s", l.module, message)
	l.store("info", message, "")
}

func (l *Logger) Warn(message string) {
	log.Printf("WARN\t%s: %s", l.module, message)
	l.store("warn", message, "")
}

func (l *Logger) Error(message string, err error) {
	log.Printf("ERROR\t%s: %s; %v", l.module, message, err)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	l.store("error", message, errText)
}

func (l *Logger) store(level, text, errText string) {
	if l.db == nil {
		return
	}
	record := LogMessage{
		Time:   time.Now(),
		Level:  level,
		Module: l.module,
		Text:   text,
		Err:    errText,
	}
	if err := l.db.WriteLogMessage(&record); err != nil {
		log.Printf("ERROR\t%s: %s", l.module, fmt.Sprintf("write log message: %v", err))
	}
}
