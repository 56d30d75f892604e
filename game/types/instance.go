package types

import "github.com/go-gl/mathgl/mgl32"

// Instance is a renderable unit: a snake segment or the apple.
type Instance struct {
	Position Position
	Rotation mgl32.Quat
}

// NewInstance places an unrotated instance at p.
func NewInstance(p Position) Instance {
	return Instance{Position: p, Rotation: mgl32.QuatIdent()}
}

// InstanceRaw is the fixed-layout record uploaded to instance buffers:
// a column-major model matrix, translation times rotation.
type InstanceRaw struct {
	Model [16]float32
}

// InstanceRawSize is the byte size of one InstanceRaw.
const InstanceRawSize = 16 * 4

// Raw builds the upload record for the instance.
func (i Instance) Raw() InstanceRaw {
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).Mul4(i.Rotation.Mat4())
	return InstanceRaw{Model: m}
}

// Translation returns the position encoded in the model matrix.
func (r InstanceRaw) Translation() Position {
	return Position{r.Model[12], r.Model[13], r.Model[14]}
}
