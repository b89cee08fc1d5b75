package math

// All Mat4 builders return a new value; the receiver is never modified.
// Chaining reads left to right, e.g.
//
//	NewMat4FromPosition(p).Scale(s).Multiply(NewMat4FromRotation(r))

/**
 * @brief Creates and returns an identity matrix:
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 * There is no package-level identity variable: every call returns a
 * fresh copy, so the identity can never be mutated.
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	return Mat4{Data: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

/**
 * @brief Creates a matrix from its sixteen elements, given row by row.
 */
func NewMat4(
	m00, m01, m02, m03,
	m10, m11, m12, m13,
	m20, m21, m22, m23,
	m30, m31, m32, m33 float32) Mat4 {
	return Mat4{Data: [16]float32{
		m00, m01, m02, m03,
		m10, m11, m12, m13,
		m20, m21, m22, m23,
		m30, m31, m32, m33,
	}}
}

// At returns the element m_rc.
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[row*4+col]
}

// Set writes the element m_rc.
func (mt *Mat4) Set(row, col int, value float32) {
	mt.Data[row*4+col] = value
}

// Row returns row i as a Vec4.
func (mt Mat4) Row(i int) Vec4 {
	return Vec4{mt.Data[i*4], mt.Data[i*4+1], mt.Data[i*4+2], mt.Data[i*4+3]}
}

// SetRow overwrites row i.
func (mt *Mat4) SetRow(i int, row Vec4) {
	mt.Data[i*4+0] = row.X
	mt.Data[i*4+1] = row.Y
	mt.Data[i*4+2] = row.Z
	mt.Data[i*4+3] = row.W
}

// Array exports the matrix as a flat row-major array of 16 floats, ready
// to be handed to a "set uniform matrix" call.
func (mt Mat4) Array() [16]float32 {
	return mt.Data
}

/**
 * @brief Compares all elements of mt and other and ensures the difference
 * is less than tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief Returns mt * mb. Every row i of the result is the combination of
 * the rows of mt weighted by the components of row i of mb. Transforming
 * a vector with the result applies mb first, then mt.
 * NOT commutative.
 * @param mb The matrix to multiply with.
 * @return The product.
 */
func (mt Mat4) Multiply(mb Mat4) Mat4 {
	a0, a1, a2, a3 := mt.Row(0), mt.Row(1), mt.Row(2), mt.Row(3)
	out := Mat4{}
	for i := 0; i < 4; i++ {
		b := mb.Row(i)
		r := a0.MulScalar(b.X).Add(a1.MulScalar(b.Y)).
			Add(a2.MulScalar(b.Z).Add(a3.MulScalar(b.W)))
		out.SetRow(i, r)
	}
	return out
}

/**
 * @brief Transforms the 3D point v with this matrix, treating v as having
 * an implicit w of 1.
 * @param v The point to transform.
 * @return The transformed homogeneous point.
 */
func (mt Mat4) MulVec3(v Vec3) Vec4 {
	m := &mt.Data
	return Vec4{
		(m[0] * v.X) + (m[4] * v.Y) + (m[8] * v.Z) + m[12],
		(m[1] * v.X) + (m[5] * v.Y) + (m[9] * v.Z) + m[13],
		(m[2] * v.X) + (m[6] * v.Y) + (m[10] * v.Z) + m[14],
		(m[3] * v.X) + (m[7] * v.Y) + (m[11] * v.Z) + m[15],
	}
}

/**
 * @brief Transforms the homogeneous vector v with this matrix.
 */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	m := &mt.Data
	return Vec4{
		(m[0] * v.X) + (m[4] * v.Y) + (m[8] * v.Z) + (m[12] * v.W),
		(m[1] * v.X) + (m[5] * v.Y) + (m[9] * v.Z) + (m[13] * v.W),
		(m[2] * v.X) + (m[6] * v.Y) + (m[10] * v.Z) + (m[14] * v.W),
		(m[3] * v.X) + (m[7] * v.Y) + (m[11] * v.Z) + (m[15] * v.W),
	}
}

/**
 * @brief Translates an object transformation matrix by the given offset:
 * row 3 becomes mt.MulVec3(offset). Expects an initialized (usually
 * identity based) matrix.
 */
func (mt Mat4) Translate(offset Vec3) Mat4 {
	out := mt
	out.SetRow(3, mt.MulVec3(offset))
	return out
}

/**
 * @brief Rotates an object transformation matrix by angleDegrees around
 * axis, using Rodrigues' rotation formula. Unlike QuatAngleAxis, the axis
 * is normalized here before use.
 */
func (mt Mat4) Rotate(angleDegrees float32, axis Vec3) Mat4 {
	rad := DegToRad(angleDegrees)
	c := kcos(rad)
	a := axis.Normalized()
	temp := a.MulScalar(1.0 - c)
	sa := a.MulScalar(ksin(rad))

	k0 := Vec3{
		c + temp.X*a.X,
		temp.X*a.Y + sa.Z,
		temp.X*a.Z - sa.Y}
	k1 := Vec3{
		temp.Y*a.X - sa.Z,
		c + temp.Y*a.Y,
		temp.Y*a.Z + sa.X}
	k2 := Vec3{
		temp.Z*a.X + sa.Y,
		temp.Z*a.Y - sa.X,
		c + temp.Z*a.Z}

	r0, r1, r2 := mt.Row(0), mt.Row(1), mt.Row(2)
	rot := func(k Vec3) Vec4 {
		return r0.MulScalar(k.X).Add(r1.MulScalar(k.Y)).Add(r2.MulScalar(k.Z))
	}

	out := mt
	out.SetRow(0, rot(k0))
	out.SetRow(1, rot(k1))
	out.SetRow(2, rot(k2))
	return out
}

/**
 * @brief Scales the diagonal elements m00, m11 and m22 by factor. No other
 * element is touched, so this is only a true scale for unrotated matrices.
 */
func (mt Mat4) Scale(factor Vec3) Mat4 {
	out := mt
	out.Data[0] *= factor.X
	out.Data[5] *= factor.Y
	out.Data[10] *= factor.Z
	return out
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	out := Mat4{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Data[c*4+r] = mt.Data[r*4+c]
		}
	}
	return out
}

/**
 * @brief Creates and returns an orthographic projection matrix. Typically used to
 * render flat or 2D scenes. Depth is not parameterized: m22 is fixed to -1.
 * @param left The left side of the view frustum.
 * @param right The right side of the view frustum.
 * @param bottom The bottom side of the view frustum.
 * @param top The top side of the view frustum.
 * @return A new orthographic projection matrix.
 */
func NewMat4Ortho(left, right, bottom, top float32) Mat4 {
	rl := right - left
	tb := top - bottom
	return NewMat4(
		2.0/rl, 0, 0, 0,
		0, 2.0/tb, 0, 0,
		0, 0, -1.0, 0,
		-(right+left)/rl, -(top+bottom)/tb, 0, 1.0,
	)
}

/**
 * @brief Creates and returns a perspective matrix. Typically used to render 3d scenes.
 * m33 is 1, so the clip w of a view space point is 1 - z.
 * @param fovDegrees The vertical field of view in degrees.
 * @param width The viewport width.
 * @param height The viewport height.
 * @param zNear The near clipping plane distance.
 * @param zFar The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fovDegrees, width, height, zNear, zFar float32) Mat4 {
	rad2 := DegToRad(fovDegrees) * 0.5
	h := kcos(rad2) / ksin(rad2)
	w := (h * height) / width
	rng := zFar - zNear
	return NewMat4(
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, -(zFar+zNear)/rng, -1,
		0, 0, (-2.0*zFar*zNear)/rng, 1.0,
	)
}

/**
 * @brief Creates and returns a right-handed look-at matrix, or a matrix
 * looking at center from the perspective of eye.
 * @param eye The position of the camera.
 * @param center The position to "look at".
 * @param up The up vector.
 * @return A view matrix.
 */
func NewMat4LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up.Normalized()).Normalized()
	u := s.Cross(f)
	return NewMat4(
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1.0,
	)
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewMat4FromPosition(position Vec3) Mat4 {
	return NewMat4Identity().Translate(position)
}

/**
 * @brief Creates a rotation matrix from Euler XYZ degrees, going through
 * QuatFromRotation.
 */
func NewMat4FromRotation(rotation Vec3) Mat4 {
	q := QuatFromRotation(rotation)
	return NewMat4(
		1-2*q.Y*q.Y-2*q.Z*q.Z, 2*q.X*q.Y+2*q.W*q.Z, 2*q.X*q.Z-2*q.W*q.Y, 0,
		2*q.X*q.Y-2*q.W*q.Z, 1-2*q.X*q.X-2*q.Z*q.Z, 2*q.Y*q.Z+2*q.W*q.X, 0,
		2*q.X*q.Z+2*q.W*q.Y, 2*q.Y*q.Z-2*q.W*q.X, 1-2*q.X*q.X-2*q.Y*q.Y, 0,
		0, 0, 0, 1,
	)
}

/**
 * @brief Returns a pure scale matrix using the provided scale.
 */
func NewMat4FromScale(scale Vec3) Mat4 {
	return NewMat4(
		scale.X, 0, 0, 0,
		0, scale.Y, 0, 0,
		0, 0, scale.Z, 0,
		0, 0, 0, 1,
	)
}
