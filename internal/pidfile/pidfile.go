// Package pidfile maintains the liveness marker holding the bot's process ID.
//
// The marker is informational. Check clears any marker left by a previous
// run and always reports that no other instance is running; it does not lock.
package pidfile

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// StaleAfter is the age past which a marker is treated as left over.
const StaleAfter = 300 * time.Second

type Marker struct {
	path string
	now  func() time.Time
}

func New(path string) *Marker {
	return &Marker{path: path, now: time.Now}
}

// Check removes a stale or existing marker, writes the current PID and
// returns false.
func (m *Marker) Check() (bool, error) {
	info, err := os.Stat(m.path)
	switch {
	case err == nil:
		if age := m.now().Sub(info.ModTime()); age > StaleAfter {
			slog.Info("Stale pid file removed", "path", m.path, "age", age.Round(time.Second))
		} else if pid, readErr := m.read(); readErr != nil {
			slog.Error("reading pid file", "err", readErr, "path", m.path)
		} else {
			slog.Info("Existing pid file removed", "path", m.path, "pid", pid)
		}
		if err := os.Remove(m.path); err != nil {
			return false, errors.Wrap(err, "remove pid file")
		}
	case !os.IsNotExist(err):
		return false, errors.Wrap(err, "stat pid file")
	}

	if err := os.WriteFile(m.path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return false, errors.Wrap(err, "write pid file")
	}
	return false, nil
}

func (m *Marker) read() (int, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// Remove deletes the marker on shutdown.
func (m *Marker) Remove() {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		slog.Error("removing pid file", "err", err, "path", m.path)
		return
	}
	slog.Info("Pid file removed", "path", m.path)
}
