package menu

import (
	"bytes"

	_ "embed"

	"github.com/go-faster/errors"
)

// defaultMenu is the built-in menu used when no catalog file is configured.
//
//go:embed menu.json
var defaultMenu []byte

// Default returns the embedded menu catalog.
func Default() (*Static, error) {
	s, err := Parse(bytes.NewReader(defaultMenu))
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded menu")
	}
	return s, nil
}
