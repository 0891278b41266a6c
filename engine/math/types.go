package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// IVec2 is an integer 2D vector, used for screen-space positions and sizes.
type IVec2 struct {
	X, Y int32
}

/** @brief A quaternion, used to represent rotational orientation. */
type Quaternion Vec4

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

// Color is a linear RGBA colour.
type Color struct {
	R, G, B, A float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type BoundingBox struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
	/** @brief False until the box has been given extents. */
	Defined bool
}
