package repository

import "errors"

var (
	ErrNoData  = errors.New("no stored catalog")
	ErrCorrupt = errors.New("stored catalog is corrupt")
)
