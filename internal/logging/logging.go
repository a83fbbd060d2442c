// Package logging wraps logrus with named entries and a shared level.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

func init() {
	root.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	root.SetLevel(logrus.InfoLevel)
}

// GetLogger returns an entry tagged with the component name.
func GetLogger(name string) *logrus.Entry {
	return root.WithField("component", name)
}

func SetLogLevel(lvl logrus.Level) {
	root.SetLevel(lvl)
}

// ParseLevel accepts logrus level names; empty means info.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(name)
}

func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// DisableColor forces plain output, used when logs go to a file.
func DisableColor() {
	root.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		DisableColors:   true,
	})
}

// ToFile redirects logs to path and returns a closer for it.
func ToFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	DisableColor()
	SetOutput(f)
	return f, nil
}
