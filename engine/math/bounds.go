package math

var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
)

func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewBoundingBox returns a defined box spanning min to max.
func NewBoundingBox(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max, Defined: true}
}

// NewBoundingBoxUniform returns a box spanning -extent to extent on every axis.
func NewBoundingBoxUniform(extent float32) BoundingBox {
	return NewBoundingBox(NewVec3Uniform(-extent), NewVec3Uniform(extent))
}

func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

/**
 * @brief Grows the box to include the given point.
 */
func (b BoundingBox) MergePoint(p Vec3) BoundingBox {
	if !b.Defined {
		return NewBoundingBox(p, p)
	}
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
	return b
}

func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	if !other.Defined {
		return b
	}
	return b.MergePoint(other.Min).MergePoint(other.Max)
}

func (b BoundingBox) ContainsPoint(p Vec3) bool {
	return b.Defined &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Contains reports whether other lies completely inside b.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return other.Defined && b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

func (b BoundingBox) Intersects(other BoundingBox) bool {
	if !b.Defined || !other.Defined {
		return false
	}
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

/**
 * @brief Returns the axis-aligned box enclosing all eight corners of b after
 * transforming them by mt.
 */
func (b BoundingBox) Transformed(mt Mat4) BoundingBox {
	if !b.Defined {
		return b
	}
	out := BoundingBox{}
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out = out.MergePoint(corner.Transform(mt))
	}
	return out
}
