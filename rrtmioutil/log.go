/*
Copyright © 2026 the rrtmio authors.
This file is part of rrtmio.

rrtmio is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rrtmio is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rrtmio.  If not, see <http://www.gnu.org/licenses/>.
*/

package rrtmioutil

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Log receives the progress messages of the commands.
var Log logrus.FieldLogger = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.InfoLevel,
}

// setLogLevel sets the minimum severity of the messages Log writes. It has
// no effect if Log has been replaced by something other than a
// *logrus.Logger.
func setLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("rrtmio: invalid LogLevel: %v", err)
	}
	if l, ok := Log.(*logrus.Logger); ok {
		l.Level = lvl
	}
	return nil
}
