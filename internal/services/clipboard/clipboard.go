// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable reports that no clipboard utility is usable on this system.
var ErrUnavailable = errors.New("clipboard unavailable")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, writeError)
	}
	return nil
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(text string) error

// Copy calls the function.
func (copier CopierFunc) Copy(text string) error {
	return copier(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopierFunc(nil)
)
