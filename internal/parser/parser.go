// Package parser turns descriptor files into parsed API models.
package parser

import (
	"context"
	"errors"

	"github.com/pccui/commerce-sdk/pkg/model"
)

// Parser errors
var (
	ErrUnsupportedDescriptor = errors.New("unsupported descriptor")
	ErrLoadDescriptor        = errors.New("failed to load descriptor")
)

// Parser parses one descriptor file into an API model
type Parser interface {
	Parse(ctx context.Context, path string) (*model.API, error)
}

// ParserFunc adapts an ordinary function to the Parser interface
type ParserFunc func(ctx context.Context, path string) (*model.API, error)

// Parse calls f(ctx, path)
func (f ParserFunc) Parse(ctx context.Context, path string) (*model.API, error) {
	return f(ctx, path)
}
