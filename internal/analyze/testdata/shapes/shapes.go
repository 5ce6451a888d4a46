package shapes

import (
	"io/fs"
	"time"
)

// Node is used by the Ref variant.
type Node struct{ Next *Node }

// Shape is the union exercised by the loader tests.
//
//autofrom:union disabled=[Legacy]
type (
	Shape interface{ isShape() }

	Path   struct{ fs.PathError }
	Tick   struct{ time.Duration }
	Pair   struct{ int; string }
	Empty  struct{}
	Ref    struct{ *Node }
	Legacy struct{ time.Duration }
)

func (Path) isShape()   {}
func (Tick) isShape()   {}
func (Pair) isShape()   {}
func (Empty) isShape()  {}
func (Ref) isShape()    {}
func (Legacy) isShape() {}
