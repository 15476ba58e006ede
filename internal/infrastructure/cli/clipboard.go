package cli

import (
	"github.com/atotto/clipboard"

	"github.com/nlsh-dev/nlsh/internal/ports"
)

// SystemClipboard implements ports.Clipboard with the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Enabled() bool {
	return !clipboard.Unsupported
}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ ports.Clipboard = SystemClipboard{}
