package collision

// MaxAttributes is the number of distinct attribute bits a collider can carry
const MaxAttributes = 32

// Attribute is a set of tags describing what a collider is, or what it ignores.
type Attribute uint32

const (
	NoAttribute  Attribute = 0
	AllAttribute Attribute = 0xFFFFFFFF
)

// AttributeBit returns the attribute with only bit i set, none when i is out of [0, MaxAttributes)
func AttributeBit(i int) Attribute {
	if i < 0 || i >= MaxAttributes {
		return NoAttribute
	}
	return 1 << i
}

// Has reports whether every bit of other is set in a
func (a Attribute) Has(other Attribute) bool {
	return a&other == other
}

func (a Attribute) With(other Attribute) Attribute {
	return a | other
}

func (a Attribute) Without(other Attribute) Attribute {
	return a &^ other
}

// Intersects reports whether a and other share at least one bit
func (a Attribute) Intersects(other Attribute) bool {
	return a&other != 0
}

func (a Attribute) None() bool {
	return a == NoAttribute
}

// CanCollide tells whether two colliders may be tested against each other:
// neither side may ignore an attribute the other one carries.
func CanCollide(aAttribute, aIgnore, bAttribute, bIgnore Attribute) bool {
	return !aIgnore.Intersects(bAttribute) && !bIgnore.Intersects(aAttribute)
}
