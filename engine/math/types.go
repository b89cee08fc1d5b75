package math

// Vec2 represents a 2D vector, typically a texture coordinate.
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector. Used for positions, Euler rotations
// (in degrees), scale factors and axes.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector. Used both as a homogeneous point/vector
// and as the storage for a Quaternion.
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A quaternion, used to represent rotational orientation.
 * W is the real part. When used as a rotation its magnitude is expected
 * to be 1; this is not enforced.
 */
type Quaternion Vec4

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * Elements are stored row-major: element m_rc lives at Data[r*4+c], and
 * rows 0..3 are the four consecutive groups of four floats.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the transform of an object in the world.
 * NOTE: The properties of this should not be edited directly,
 * but done via the methods in transform.go to ensure proper
 * matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in the world, as Euler XYZ degrees. */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the affine matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The affine (world) matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Affine Mat4
}
