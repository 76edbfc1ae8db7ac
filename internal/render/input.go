package render

import "github.com/gdamore/tcell/v2"

// PumpEvents forwards screen events to out until done is closed or the
// screen is finalised. It runs on its own goroutine and never touches the
// scene.
func PumpEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// IsCloseKey reports whether a key press asks the window to close:
// Escape, Ctrl-C, or a bare 'q'.
func IsCloseKey(key tcell.Key, r rune, mod tcell.ModMask) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' && mod&tcell.ModCtrl == 0
	}
	return false
}
