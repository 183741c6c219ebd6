//go:build headless

package window

import "github.com/vovakirdan/tui-raycaster/internal/session"

// Run reports ErrUnavailable: this build has no display backend.
func Run(_ *session.Session, _ Options) error {
	return ErrUnavailable
}
