package shared

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes text to the host clipboard through [clipboard.WriteAll].
//
// On Linux this needs xclip, xsel, or wl-clipboard on PATH.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrServiceUnavailable)
	}
	return clipboard.WriteAll(text)
}
