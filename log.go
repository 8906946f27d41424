// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logMu  sync.RWMutex
	logger = logrus.StandardLogger()
)

// SetLogger replaces the logger used by Watch and Worker.
// A nil logger restores logrus' standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// logEntry returns an entry tagged with the package name.
func logEntry() *logrus.Entry {
	logMu.RLock()
	l := logger
	logMu.RUnlock()
	return l.WithField("pkg", "cosync")
}
