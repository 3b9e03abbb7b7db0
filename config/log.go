// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"log"
	"os"
)

//Logger is the interface to be implemented by the logger used across the service
type Logger interface {
	//Info logs the messages useful for tracing the requests served
	Info(l ...interface{})
	//Debug logs the messages useful only while debugging the service
	Debug(l ...interface{})
	//Warn logs the recoverable problems noticed while serving
	Warn(l ...interface{})
	//Error logs the errors occurred while serving
	Error(l ...interface{})
	//Fatal logs the given message and exits the process
	Fatal(l ...interface{})
}

//AppLog is the default logger of the service writing leveled lines to the standard output
type AppLog struct {
	l *log.Logger
}

//NewLogger returns the default logger of the service
func NewLogger() *AppLog {
	return &AppLog{l: log.New(os.Stdout, "", log.LstdFlags)}
}

func (a *AppLog) print(level string, l []interface{}) {
	args := make([]interface{}, 0, len(l)+1)
	args = append(args, level)
	args = append(args, l...)
	a.l.Println(args...)
}

//Info logs the given message with the INFO level
func (a *AppLog) Info(l ...interface{}) {
	a.print("INFO", l)
}

//Debug logs the given message with the DEBUG level
func (a *AppLog) Debug(l ...interface{}) {
	a.print("DEBUG", l)
}

//Warn logs the given message with the WARN level
func (a *AppLog) Warn(l ...interface{}) {
	a.print("WARN", l)
}

//Error logs the given message with the ERROR level
func (a *AppLog) Error(l ...interface{}) {
	a.print("ERROR", l)
}

//Fatal logs the given message with the FATAL level and exits the process
func (a *AppLog) Fatal(l ...interface{}) {
	a.print("FATAL", l)
	os.Exit(1)
}
