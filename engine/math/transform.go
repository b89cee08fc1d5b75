package math

/**
 * @brief Builds the model-view-projection matrix for an object:
 * affine = FromPosition(position).Scale(scale).Multiply(FromRotation(rotation))
 * result = viewProj.Multiply(affine)
 * The order (position, scale, rotate, then view-projection) is what the
 * render path expects, including the way the diagonal-only Scale interacts
 * with the rotation. Do not reorder.
 * @param position The object position.
 * @param rotation The object rotation as Euler XYZ degrees.
 * @param scale The object scale.
 * @param viewProj The camera view-projection matrix.
 * @return The final transform, ready for upload.
 */
func AffineTransform(position, rotation, scale Vec3, viewProj Mat4) Mat4 {
	return viewProj.Multiply(affine(position, rotation, scale))
}

func affine(position, rotation, scale Vec3) Mat4 {
	return NewMat4FromPosition(position).
		Scale(scale).
		Multiply(NewMat4FromRotation(rotation))
}

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

func TransformFromPosition(position Vec3) *Transform {
	return TransformFromPositionRotationScale(position, NewVec3Zero(), NewVec3One())
}

func TransformFromPositionRotationScale(position, rotation, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Affine = NewMat4Identity()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

// SetRotation sets the Euler XYZ rotation, in degrees.
func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate adds delta (Euler degrees) to the current rotation. Angles are
// kept in [0, 360).
func (t *Transform) Rotate(delta Vec3) {
	t.Rotation = WrapDegreesVec3(t.Rotation.Add(delta))
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetAffine returns the cached affine matrix, rebuilding it if the
// transform changed. A nil transform yields the identity.
func (t *Transform) GetAffine() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	if t.IsDirty {
		t.Affine = affine(t.Position, t.Rotation, t.Scale)
		t.IsDirty = false
	}
	return t.Affine
}

// ModelViewProjection returns viewProj.Multiply(t.GetAffine()).
func (t *Transform) ModelViewProjection(viewProj Mat4) Mat4 {
	return viewProj.Multiply(t.GetAffine())
}
