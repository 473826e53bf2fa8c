// Package logrus adapts a *logrus.Entry to the pokedata.Logger interface.
package logrus

import (
	"github.com/edgedx/pokedata"
	"github.com/sirupsen/logrus"
)

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f pokedata.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f pokedata.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f pokedata.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f pokedata.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
