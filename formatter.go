package main

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// lineFormatter is a minimal stand-in for the reference implementation's
// private logrus-easy-formatter (git.fiblab.net/utils/logrus-easy-formatter),
// which this module can't fetch. It reproduces the one behavior main.go
// actually needs: a "[component] [time] [level] message" line.
type lineFormatter struct {
	TimestampFormat string
}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	component, _ := entry.Data["component"].(string)
	if component == "" {
		component = "simulator"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[%s] [%s] [%s] %s\n",
		component, entry.Time.Format(f.TimestampFormat), entry.Level.String(), entry.Message)
	return buf.Bytes(), nil
}
