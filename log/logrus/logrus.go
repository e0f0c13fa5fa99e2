// Package logrus adapts a logrus.Entry to the textcodec log interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/wippyai/textcodec/log"
)

type Logger struct{ E *logrus.Entry }

var _ log.Logger = Logger{}

func (l Logger) Debug(msg string, f log.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f log.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f log.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f log.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
