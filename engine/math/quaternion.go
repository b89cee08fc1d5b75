package math

/**
 * @brief Creates an identity quaternion.
 * @return An identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Creates a quaternion rotation of angleDegrees about axis.
 * The axis must already be normalized; it is used as given.
 * @param angleDegrees The angle of rotation, in degrees.
 * @param axis The unit axis of rotation.
 * @return A new unit quaternion.
 */
func QuatAngleAxis(angleDegrees float32, axis Vec3) Quaternion {
	r := DegToRad(angleDegrees) * 0.5
	s := ksin(r)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, kcos(r)}
}

/**
 * @brief Creates a quaternion rotation from Euler XYZ angles in degrees.
 * X is applied first, then Y, then Z. Changing this order changes the
 * resulting orientation of every combined rotation.
 * @param rotation The Euler angles, in degrees.
 * @return The combined rotation.
 */
func QuatFromRotation(rotation Vec3) Quaternion {
	q := QuatAngleAxis(rotation.X, NewVec3XAxis())
	q = QuatMul(QuatAngleAxis(rotation.Y, NewVec3YAxis()), q)
	return QuatMul(QuatAngleAxis(rotation.Z, NewVec3ZAxis()), q)
}

/**
 * @brief Rotates quaternion p with the extra rotation q (Hamilton product q*p).
 * @param q The additional rotation to apply.
 * @param p The original rotation.
 * @return A quaternion representing "rotate by p, then by q".
 */
func QuatMul(q, p Quaternion) Quaternion {
	return Quaternion{
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y + q.Y*p.W + q.Z*p.X - q.X*p.Z,
		Z: q.W*p.Z + q.Z*p.W + q.X*p.Y - q.Y*p.X,
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
	}
}

// Mul is QuatMul(q, p).
func (q Quaternion) Mul(p Quaternion) Quaternion {
	return QuatMul(q, p)
}

/**
 * @brief Returns the magnitude of the provided quaternion.
 */
func (q Quaternion) Length() float32 {
	return Vec4(q).Length()
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalized() Quaternion {
	return Quaternion(Vec4(q).Normalized())
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Calculates the dot product of the provided quaternions.
 */
func (q Quaternion) Dot(other Quaternion) float32 {
	return Vec4(q).Dot(Vec4(other))
}

// RotateVec3 rotates v by the unit quaternion q (q * v * q^-1).
func (q Quaternion) RotateVec3(v Vec3) Vec3 {
	p := Quaternion{v.X, v.Y, v.Z, 0}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vec3{r.X, r.Y, r.Z}
}

func (q Quaternion) ToVec4() Vec4 {
	return Vec4(q)
}

/**
 * @brief Compares all elements of q and other and ensures the difference
 * is less than tolerance.
 */
func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	return Vec4(q).Compare(Vec4(other), tolerance)
}
