package naming

import "autofrom/internal/analyze/testdata/naming/lib"

//autofrom:union
type (
	Node interface{}

	Leaf struct{ realname.Token }
)
