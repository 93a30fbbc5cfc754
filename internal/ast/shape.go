package ast

// ShapeType is the discriminator tag of the closed shape union.
type ShapeType string

const (
	ShapeBlob       ShapeType = "blob"
	ShapeBoolean    ShapeType = "boolean"
	ShapeDocument   ShapeType = "document"
	ShapeString     ShapeType = "string"
	ShapeByte       ShapeType = "byte"
	ShapeShort      ShapeType = "short"
	ShapeInteger    ShapeType = "integer"
	ShapeLong       ShapeType = "long"
	ShapeFloat      ShapeType = "float"
	ShapeDouble     ShapeType = "double"
	ShapeBigInteger ShapeType = "bigInteger"
	ShapeBigDecimal ShapeType = "bigDecimal"
	ShapeTimestamp  ShapeType = "timestamp"

	ShapeList      ShapeType = "list"
	ShapeMap       ShapeType = "map"
	ShapeStructure ShapeType = "structure"
	ShapeUnion     ShapeType = "union"
	ShapeEnum      ShapeType = "enum"
	ShapeIntEnum   ShapeType = "intEnum"
	ShapeService   ShapeType = "service"
	ShapeResource  ShapeType = "resource"
	ShapeOperation ShapeType = "operation"
	ShapeApply     ShapeType = "apply"
)

// simpleShapeTypes is the set of tags with no fields of their own.
var simpleShapeTypes = map[ShapeType]bool{
	ShapeBlob:       true,
	ShapeBoolean:    true,
	ShapeDocument:   true,
	ShapeString:     true,
	ShapeByte:       true,
	ShapeShort:      true,
	ShapeInteger:    true,
	ShapeLong:       true,
	ShapeFloat:      true,
	ShapeDouble:     true,
	ShapeBigInteger: true,
	ShapeBigDecimal: true,
	ShapeTimestamp:  true,
}

// IsSimple reports whether t is one of the primitive shape kinds.
func (t ShapeType) IsSimple() bool { return simpleShapeTypes[t] }

// IsValid reports whether t is a known shape type tag.
func (t ShapeType) IsValid() bool {
	if simpleShapeTypes[t] {
		return true
	}
	switch t {
	case ShapeList, ShapeMap, ShapeStructure, ShapeUnion, ShapeEnum,
		ShapeIntEnum, ShapeService, ShapeResource, ShapeOperation, ShapeApply:
		return true
	}
	return false
}

// Reference is a bare pointer to another shape. References appear in nested
// positions and carry no "type" tag; context identifies them.
type Reference struct {
	Target AbsoluteShapeID `json:"target"`
}

// Member is a Reference plus an optional trait attachment. Composition, not
// subtyping: no call site treats a Member as "any Reference".
type Member struct {
	Target AbsoluteShapeID           `json:"target"`
	Traits map[AbsoluteShapeID]Value `json:"traits,omitempty"`
}

// Shape is the sealed interface over the closed set of shape variants.
// Exactly one concrete type implements it per "type" tag.
type Shape interface {
	Type() ShapeType
	shape() // sealed
}

// MixinList is the common optional field shared by every composable variant:
// an ordered list of mixin references merged in by an external resolution
// stage.
type MixinList struct {
	Mixins []Reference `json:"mixins,omitempty"`
}

// SimpleShape covers the thirteen primitive kinds. Kind carries the concrete
// tag; the variants are otherwise structurally identical.
type SimpleShape struct {
	MixinList
	Kind ShapeType `json:"type"`
}

func (s *SimpleShape) Type() ShapeType { return s.Kind }
func (*SimpleShape) shape()            {}

// ListShape has a single element member, which carries trait attachments.
type ListShape struct {
	MixinList
	Member Member `json:"member"`
}

func (*ListShape) Type() ShapeType { return ShapeList }
func (*ListShape) shape()          {}

// MapShape has plain key and value references; no trait attachment in either
// position.
type MapShape struct {
	MixinList
	Key   Reference `json:"key"`
	Value Reference `json:"value"`
}

func (*MapShape) Type() ShapeType { return ShapeMap }
func (*MapShape) shape()          {}

// StructureShape has an optional, possibly empty member mapping.
type StructureShape struct {
	MixinList
	Members map[Identifier]Member `json:"members,omitempty"`
}

func (*StructureShape) Type() ShapeType { return ShapeStructure }
func (*StructureShape) shape()          {}

// UnionShape has a required, non-empty member mapping.
type UnionShape struct {
	MixinList
	Members map[Identifier]Member `json:"members"`
}

func (*UnionShape) Type() ShapeType { return ShapeUnion }
func (*UnionShape) shape()          {}

// EnumShape covers both enum and intEnum; Kind carries the concrete tag.
// Member names additionally satisfy the enum member grammar.
type EnumShape struct {
	MixinList
	Kind    ShapeType             `json:"type"`
	Members map[Identifier]Member `json:"members"`
}

func (s *EnumShape) Type() ShapeType { return s.Kind }
func (*EnumShape) shape()            {}

// ServiceShape binds operations, resources, and errors under an optional
// version, with trait values and a rename table.
type ServiceShape struct {
	MixinList
	Version    string                 `json:"version,omitempty"`
	Operations []Reference            `json:"operations"`
	Resources  []Reference            `json:"resources"`
	Errors     []Reference            `json:"errors"`
	Traits     map[ShapeID]Value      `json:"traits"`
	Rename     map[ShapeID]Identifier `json:"rename"`
}

func (*ServiceShape) Type() ShapeType { return ShapeService }
func (*ServiceShape) shape()          {}

// ResourceShape binds identifiers and properties to lifecycle and instance
// operations.
type ResourceShape struct {
	MixinList
	Identifiers          map[string]Reference `json:"identifiers"`
	Properties           map[string]Reference `json:"properties"`
	Operations           []Reference          `json:"operations"`
	CollectionOperations []Reference          `json:"collectionOperations"`
	Resources            []Reference          `json:"resources"`
	Traits               map[ShapeID]Value    `json:"traits"`

	Create *Reference `json:"create,omitempty"`
	Put    *Reference `json:"put,omitempty"`
	Read   *Reference `json:"read,omitempty"`
	Update *Reference `json:"update,omitempty"`
	Delete *Reference `json:"delete,omitempty"`
	List   *Reference `json:"list,omitempty"`
}

func (*ResourceShape) Type() ShapeType { return ShapeResource }
func (*ResourceShape) shape()          {}

// OperationShape has input and output references and an error list.
type OperationShape struct {
	MixinList
	Input  Reference         `json:"input"`
	Output Reference         `json:"output"`
	Errors []Reference       `json:"errors"`
	Traits map[ShapeID]Value `json:"traits"`
}

func (*OperationShape) Type() ShapeType { return ShapeOperation }
func (*OperationShape) shape()          {}

// ApplyShape attaches traits to an existing shape. Its trait map values are
// identifiers, not arbitrary documents (a deliberate asymmetry with every
// other variant's trait map). It is also the only variant without mixins.
type ApplyShape struct {
	Traits map[ShapeID]Identifier `json:"traits"`
}

func (*ApplyShape) Type() ShapeType { return ShapeApply }
func (*ApplyShape) shape()          {}
