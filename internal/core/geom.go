// Package core provides fundamental types and utilities shared by the
// generator, the game state machine and the platform layer.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D point, used for mouse positions.
type Vec2 [2]float64

// Vec3 is a 3D vector in world units (x: lateral, y: height, z: forward).
type Vec3 [3]float64

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Mat3 is a column-major 3x3 matrix, laid out like the GL uniform it feeds.
type Mat3 [9]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns a * b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[k*3+row] * b[col*3+k]
			}
			out[col*3+row] = sum
		}
	}
	return out
}

// Transpose returns the transposed matrix.
func (a Mat3) Transpose() Mat3 {
	return Mat3{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}

// Transform returns m * v.
func (a Mat3) Transform(v Vec3) Vec3 {
	return Vec3{
		a[0]*v[0] + a[3]*v[1] + a[6]*v[2],
		a[1]*v[0] + a[4]*v[1] + a[7]*v[2],
		a[2]*v[0] + a[5]*v[1] + a[8]*v[2],
	}
}

// RotationXY builds the camera rotation for pitch rotX and yaw rotY.
func RotationXY(rotX, rotY float64) Mat3 {
	cx, sx := math.Cos(rotX), math.Sin(rotX)
	cy, sy := math.Cos(rotY), math.Sin(rotY)
	pitch := Mat3{
		1, 0, 0,
		0, cx, sx,
		0, -sx, cx,
	}
	yaw := Mat3{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	}
	return pitch.Mul(yaw).Transpose()
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Smoothstep is the Hermite step between edge0 and edge1.
// Reversed edges (edge0 > edge1) produce a falling step.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := ClampF((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
