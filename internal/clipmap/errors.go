package clipmap

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid clipmap configuration")
	ErrCapacity      = errors.New("vertex count exceeds index format capacity")
	ErrIndexRange    = errors.New("tile index outside its vertex block")
	ErrCoverage      = errors.New("clipmap shells do not tile their square")
	ErrSeams         = errors.New("shell edges miss the coarser lattice")
)
