// Package clipboard exports rendered overviews to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier is the destination the overview command writes to when copying is
// requested.
type Copier interface {
	Copy(text string) error
}

// Service is the platform clipboard implementation of Copier.
type Service struct{}

var _ Copier = (*Service)(nil)

// NewService returns the platform clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard contents with text.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}
