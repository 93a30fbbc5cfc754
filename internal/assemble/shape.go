package assemble

import (
	"slices"

	"github.com/castlebridge/smithyast/internal/ast"
)

// fieldTable lists the field set a variant accepts. The "type" tag itself is
// always accepted; it is validated before the table applies.
type fieldTable struct {
	required []string
	optional []string
}

// Every variant except apply additionally accepts "mixins"; the simple kinds
// have no table entry because they accept nothing else.
var fieldTables = map[ast.ShapeType]fieldTable{
	ast.ShapeList:      {required: []string{"member"}},
	ast.ShapeMap:       {required: []string{"key", "value"}},
	ast.ShapeStructure: {optional: []string{"members"}},
	ast.ShapeUnion:     {required: []string{"members"}},
	ast.ShapeEnum:      {required: []string{"members"}},
	ast.ShapeIntEnum:   {required: []string{"members"}},
	ast.ShapeService: {
		required: []string{"operations", "resources", "errors", "traits", "rename"},
		optional: []string{"version"},
	},
	ast.ShapeResource: {
		required: []string{"identifiers", "properties", "operations", "collectionOperations", "resources", "traits"},
		optional: []string{"create", "put", "read", "update", "delete", "list"},
	},
	ast.ShapeOperation: {required: []string{"input", "output", "errors", "traits"}},
	ast.ShapeApply:     {required: []string{"traits"}},
}

// assembleShape classifies one top-level shape node. An unknown or missing
// type tag fails immediately with no further checks on the node.
func assembleShape(path string, v ast.Value) (ast.Shape, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "shape is not an object")}
	}

	typeVal, present := obj["type"]
	if !present {
		return nil, []ValidationError{errorf(ErrUnknownShapeType, path, "shape has no type")}
	}
	typeStr, ok := typeVal.(ast.String)
	if !ok {
		return nil, []ValidationError{errorf(ErrUnknownShapeType, childField(path, "type"), "shape type is not a string")}
	}
	tag := ast.ShapeType(typeStr)
	if !tag.IsValid() {
		return nil, []ValidationError{errorf(ErrUnknownShapeType, childField(path, "type"), "unknown shape type %q", string(typeStr))}
	}

	errs := checkFields(path, obj, tag)

	var shape ast.Shape
	var shapeErrs []ValidationError
	switch {
	case tag.IsSimple():
		shape, shapeErrs = assembleSimple(path, obj, tag)
	case tag == ast.ShapeList:
		shape, shapeErrs = assembleList(path, obj)
	case tag == ast.ShapeMap:
		shape, shapeErrs = assembleMap(path, obj)
	case tag == ast.ShapeStructure:
		shape, shapeErrs = assembleStructure(path, obj)
	case tag == ast.ShapeUnion:
		shape, shapeErrs = assembleUnion(path, obj)
	case tag == ast.ShapeEnum || tag == ast.ShapeIntEnum:
		shape, shapeErrs = assembleEnum(path, obj, tag)
	case tag == ast.ShapeService:
		shape, shapeErrs = assembleService(path, obj)
	case tag == ast.ShapeResource:
		shape, shapeErrs = assembleResource(path, obj)
	case tag == ast.ShapeOperation:
		shape, shapeErrs = assembleOperation(path, obj)
	default: // apply
		shape, shapeErrs = assembleApply(path, obj)
	}
	errs = append(errs, shapeErrs...)
	if len(errs) > 0 {
		return nil, errs
	}
	return shape, nil
}

// checkFields enforces a variant's field table: every required field present,
// no field outside the table.
func checkFields(path string, obj ast.Object, tag ast.ShapeType) []ValidationError {
	var errs []ValidationError
	table := fieldTables[tag] // zero value for simple kinds: no fields

	for _, field := range table.required {
		if _, present := obj[field]; !present {
			errs = append(errs, errorf(ErrMissingRequiredField, childField(path, field),
				"%s shape requires field %q", tag, field))
		}
	}

	mixable := tag != ast.ShapeApply
	for _, field := range obj.SortedKeys() {
		if field == "type" {
			continue
		}
		if field == "mixins" && mixable {
			continue
		}
		if slices.Contains(table.required, field) || slices.Contains(table.optional, field) {
			continue
		}
		errs = append(errs, errorf(ErrUnexpectedField, childField(path, field),
			"field %q is not applicable to a %s shape", field, tag))
	}
	return errs
}

func assembleSimple(path string, obj ast.Object, tag ast.ShapeType) (ast.Shape, []ValidationError) {
	mixins, errs := asMixins(path, obj)
	return &ast.SimpleShape{Kind: tag, MixinList: mixins}, errs
}

func assembleList(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.ListShape{}
	var errs []ValidationError
	if v, present := obj["member"]; present {
		member, memberErrs := asMember(childField(path, "member"), v)
		shape.Member = member
		errs = append(errs, memberErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleMap(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.MapShape{}
	var errs []ValidationError
	if v, present := obj["key"]; present {
		key, keyErrs := asReference(childField(path, "key"), v)
		shape.Key = key
		errs = append(errs, keyErrs...)
	}
	if v, present := obj["value"]; present {
		value, valueErrs := asReference(childField(path, "value"), v)
		shape.Value = value
		errs = append(errs, valueErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleStructure(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.StructureShape{}
	var errs []ValidationError
	if v, present := obj["members"]; present {
		members, memberErrs := asMemberMap(childField(path, "members"), v, MemberPolicy{})
		shape.Members = members
		errs = append(errs, memberErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleUnion(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.UnionShape{}
	var errs []ValidationError
	if v, present := obj["members"]; present {
		members, memberErrs := asMemberMap(childField(path, "members"), v, MemberPolicy{RequireNonEmpty: true})
		shape.Members = members
		errs = append(errs, memberErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleEnum(path string, obj ast.Object, tag ast.ShapeType) (ast.Shape, []ValidationError) {
	shape := &ast.EnumShape{Kind: tag}
	var errs []ValidationError
	if v, present := obj["members"]; present {
		members, memberErrs := asMemberMap(childField(path, "members"), v,
			MemberPolicy{RequireNonEmpty: true, RequireEnumMemberNames: true})
		shape.Members = members
		errs = append(errs, memberErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleService(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.ServiceShape{}
	var errs []ValidationError

	if v, present := obj["version"]; present {
		version, ok := v.(ast.String)
		if !ok {
			errs = append(errs, errorf(ErrInvalidValue, childField(path, "version"), "version is not a string"))
		} else {
			shape.Version = string(version)
		}
	}
	for field, dst := range map[string]*[]ast.Reference{
		"operations": &shape.Operations,
		"resources":  &shape.Resources,
		"errors":     &shape.Errors,
	} {
		if v, present := obj[field]; present {
			refs, refErrs := asReferenceList(childField(path, field), v)
			*dst = refs
			errs = append(errs, refErrs...)
		}
	}
	if v, present := obj["traits"]; present {
		traits, traitErrs := asTraitMap(childField(path, "traits"), v)
		shape.Traits = traits
		errs = append(errs, traitErrs...)
	}
	if v, present := obj["rename"]; present {
		rename, renameErrs := asRenameMap(childField(path, "rename"), v)
		shape.Rename = rename
		errs = append(errs, renameErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleResource(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.ResourceShape{}
	var errs []ValidationError

	for field, dst := range map[string]*map[string]ast.Reference{
		"identifiers": &shape.Identifiers,
		"properties":  &shape.Properties,
	} {
		if v, present := obj[field]; present {
			refs, refErrs := asReferenceMap(childField(path, field), v)
			*dst = refs
			errs = append(errs, refErrs...)
		}
	}
	for field, dst := range map[string]*[]ast.Reference{
		"operations":           &shape.Operations,
		"collectionOperations": &shape.CollectionOperations,
		"resources":            &shape.Resources,
	} {
		if v, present := obj[field]; present {
			refs, refErrs := asReferenceList(childField(path, field), v)
			*dst = refs
			errs = append(errs, refErrs...)
		}
	}
	if v, present := obj["traits"]; present {
		traits, traitErrs := asTraitMap(childField(path, "traits"), v)
		shape.Traits = traits
		errs = append(errs, traitErrs...)
	}
	for field, dst := range map[string]**ast.Reference{
		"create": &shape.Create,
		"put":    &shape.Put,
		"read":   &shape.Read,
		"update": &shape.Update,
		"delete": &shape.Delete,
		"list":   &shape.List,
	} {
		if v, present := obj[field]; present {
			ref, refErrs := asReference(childField(path, field), v)
			if len(refErrs) == 0 {
				*dst = &ref
			}
			errs = append(errs, refErrs...)
		}
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleOperation(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.OperationShape{}
	var errs []ValidationError

	if v, present := obj["input"]; present {
		ref, refErrs := asReference(childField(path, "input"), v)
		shape.Input = ref
		errs = append(errs, refErrs...)
	}
	if v, present := obj["output"]; present {
		ref, refErrs := asReference(childField(path, "output"), v)
		shape.Output = ref
		errs = append(errs, refErrs...)
	}
	if v, present := obj["errors"]; present {
		refs, refErrs := asReferenceList(childField(path, "errors"), v)
		shape.Errors = refs
		errs = append(errs, refErrs...)
	}
	if v, present := obj["traits"]; present {
		traits, traitErrs := asTraitMap(childField(path, "traits"), v)
		shape.Traits = traits
		errs = append(errs, traitErrs...)
	}
	mixins, mixinErrs := asMixins(path, obj)
	shape.MixinList = mixins
	return shape, append(errs, mixinErrs...)
}

func assembleApply(path string, obj ast.Object) (ast.Shape, []ValidationError) {
	shape := &ast.ApplyShape{}
	var errs []ValidationError
	if v, present := obj["traits"]; present {
		traits, traitErrs := asIdentifierTraitMap(childField(path, "traits"), v)
		shape.Traits = traits
		errs = append(errs, traitErrs...)
	}
	return shape, errs
}

// asTargetID validates a reference target string.
func asTargetID(path string, v ast.Value) (ast.AbsoluteShapeID, []ValidationError) {
	s, ok := v.(ast.String)
	if !ok {
		return "", []ValidationError{errorf(ErrInvalidValue, path, "target is not a string")}
	}
	id, err := ast.ParseAbsoluteShapeID(string(s))
	if err != nil {
		return "", []ValidationError{errorf(ErrLexical, path, "%v", err)}
	}
	return id, nil
}

// asReference assembles a bare reference: an object with exactly a target.
func asReference(path string, v ast.Value) (ast.Reference, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return ast.Reference{}, []ValidationError{errorf(ErrInvalidValue, path, "reference is not an object")}
	}
	var errs []ValidationError
	targetVal, present := obj["target"]
	if !present {
		errs = append(errs, errorf(ErrMissingRequiredField, childField(path, "target"), "reference requires field \"target\""))
	}
	for _, field := range obj.SortedKeys() {
		if field != "target" {
			errs = append(errs, errorf(ErrUnexpectedField, childField(path, field),
				"field %q is not applicable to a reference", field))
		}
	}
	ref := ast.Reference{}
	if present {
		target, targetErrs := asTargetID(childField(path, "target"), targetVal)
		ref.Target = target
		errs = append(errs, targetErrs...)
	}
	return ref, errs
}

// asMember assembles a reference with an optional trait attachment.
func asMember(path string, v ast.Value) (ast.Member, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return ast.Member{}, []ValidationError{errorf(ErrInvalidValue, path, "member is not an object")}
	}
	var errs []ValidationError
	member := ast.Member{}

	targetVal, present := obj["target"]
	if !present {
		errs = append(errs, errorf(ErrMissingRequiredField, childField(path, "target"), "member requires field \"target\""))
	} else {
		target, targetErrs := asTargetID(childField(path, "target"), targetVal)
		member.Target = target
		errs = append(errs, targetErrs...)
	}
	if traitsVal, hasTraits := obj["traits"]; hasTraits {
		traitsObj, ok := traitsVal.(ast.Object)
		if !ok {
			errs = append(errs, errorf(ErrInvalidValue, childField(path, "traits"), "traits is not an object"))
		} else {
			member.Traits = make(map[ast.AbsoluteShapeID]ast.Value, len(traitsObj))
			for _, key := range traitsObj.SortedKeys() {
				id, err := ast.ParseAbsoluteShapeID(key)
				if err != nil {
					errs = append(errs, errorf(ErrLexical, childKey(childField(path, "traits"), key), "%v", err))
					continue
				}
				member.Traits[id] = traitsObj[key]
			}
		}
	}
	for _, field := range obj.SortedKeys() {
		if field != "target" && field != "traits" {
			errs = append(errs, errorf(ErrUnexpectedField, childField(path, field),
				"field %q is not applicable to a member", field))
		}
	}
	return member, errs
}

// asReferenceList assembles an ordered sequence of references.
func asReferenceList(path string, v ast.Value) ([]ast.Reference, []ValidationError) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a list of references")}
	}
	refs := make([]ast.Reference, 0, len(arr))
	var errs []ValidationError
	for i, elem := range arr {
		ref, refErrs := asReference(childIndex(path, i), elem)
		refs = append(refs, ref)
		errs = append(errs, refErrs...)
	}
	return refs, errs
}

// asReferenceMap assembles a string-keyed reference mapping (resource
// identifiers and properties; keys carry no grammar).
func asReferenceMap(path string, v ast.Value) (map[string]ast.Reference, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a mapping of references")}
	}
	refs := make(map[string]ast.Reference, len(obj))
	var errs []ValidationError
	for _, key := range obj.SortedKeys() {
		ref, refErrs := asReference(childKey(path, key), obj[key])
		refs[key] = ref
		errs = append(errs, refErrs...)
	}
	return refs, errs
}

// asMemberMap assembles an identifier-keyed member mapping and applies the
// member collection policy. Names failing the identifier grammar are
// reported lexically and excluded from the policy checks.
func asMemberMap(path string, v ast.Value, policy MemberPolicy) (map[ast.Identifier]ast.Member, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a mapping of members")}
	}
	members := make(map[ast.Identifier]ast.Member, len(obj))
	var errs []ValidationError
	names := make([]string, 0, len(obj))
	for _, key := range obj.SortedKeys() {
		name, err := ast.ParseIdentifier(key)
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		names = append(names, key)
		member, memberErrs := asMember(childKey(path, key), obj[key])
		members[name] = member
		errs = append(errs, memberErrs...)
	}
	errs = append(errs, validateMemberNames(path, names, policy)...)
	return members, errs
}

// asTraitMap assembles a trait attachment mapping with arbitrary values.
func asTraitMap(path string, v ast.Value) (map[ast.ShapeID]ast.Value, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a trait mapping")}
	}
	traits := make(map[ast.ShapeID]ast.Value, len(obj))
	var errs []ValidationError
	for _, key := range obj.SortedKeys() {
		id, err := ast.ParseShapeID(key)
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		traits[id] = obj[key]
	}
	return traits, errs
}

// asIdentifierTraitMap assembles the apply variant's trait mapping, whose
// values are identifiers rather than arbitrary documents.
func asIdentifierTraitMap(path string, v ast.Value) (map[ast.ShapeID]ast.Identifier, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a trait mapping")}
	}
	traits := make(map[ast.ShapeID]ast.Identifier, len(obj))
	var errs []ValidationError
	for _, key := range obj.SortedKeys() {
		id, err := ast.ParseShapeID(key)
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		valStr, ok := obj[key].(ast.String)
		if !ok {
			errs = append(errs, errorf(ErrInvalidValue, childKey(path, key), "apply trait value is not a string"))
			continue
		}
		name, err := ast.ParseIdentifier(string(valStr))
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		traits[id] = name
	}
	return traits, errs
}

// asRenameMap assembles the service rename table: shape ID keys to
// identifier values.
func asRenameMap(path string, v ast.Value) (map[ast.ShapeID]ast.Identifier, []ValidationError) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, path, "expected a rename mapping")}
	}
	rename := make(map[ast.ShapeID]ast.Identifier, len(obj))
	var errs []ValidationError
	for _, key := range obj.SortedKeys() {
		id, err := ast.ParseShapeID(key)
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		valStr, ok := obj[key].(ast.String)
		if !ok {
			errs = append(errs, errorf(ErrInvalidValue, childKey(path, key), "rename value is not a string"))
			continue
		}
		name, err := ast.ParseIdentifier(string(valStr))
		if err != nil {
			errs = append(errs, errorf(ErrLexical, childKey(path, key), "%v", err))
			continue
		}
		rename[id] = name
	}
	return rename, errs
}

// asMixins assembles the shared optional mixin list.
func asMixins(path string, obj ast.Object) (ast.MixinList, []ValidationError) {
	v, present := obj["mixins"]
	if !present {
		return ast.MixinList{}, nil
	}
	refs, errs := asReferenceList(childField(path, "mixins"), v)
	return ast.MixinList{Mixins: refs}, errs
}
