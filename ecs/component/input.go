package component

// Input stores per-frame movement intent for an entity. MoveX is the
// forward axis, MoveZ the strafe axis.
type Input struct {
	MoveX       float64
	MoveZ       float64
	Sprint      bool
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
