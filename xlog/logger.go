// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package xlog gives every component a module-scoped structured logger,
// backed by zap.
package xlog

import (
	"go.uber.org/zap"
)

var base *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	base = l.Sugar()
}

// Module identifies the component a logger belongs to; it is attached to
// every line that logger emits.
type Module string

const (
	ModuleScan       Module = "scan"
	ModuleTxBuilder  Module = "txbuilder"
	ModuleWallet     Module = "wallet"
	ModuleWalletFile Module = "walletfile"
	ModuleDaemon     Module = "daemonclient"
	ModuleNotify     Module = "notify"
)

// Logger is the leveled, key/value logging facade every package uses.
type Logger struct {
	module Module
}

// NewModuleLogger returns a Logger tagged with the given module name.
func NewModuleLogger(m Module) *Logger {
	return &Logger{module: m}
}

func (l *Logger) with(kv []interface{}) []interface{} {
	return append([]interface{}{"module", string(l.module)}, kv...)
}

func (l *Logger) Debug(msg string, kv ...interface{}) { base.Debugw(msg, l.with(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { base.Infow(msg, l.with(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { base.Warnw(msg, l.with(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { base.Errorw(msg, l.with(kv)...) }
