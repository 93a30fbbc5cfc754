package ast

// Encode re-emits the document as a generic value tree. Re-assembling the
// result yields an identical document: encoding writes only fields that were
// accepted, in the same structural form the assembler reads.
func (d *Document) Encode() Value {
	root := Object{
		"smithy": String(d.Smithy),
	}
	if len(d.Metadata) > 0 {
		meta := make(Object, len(d.Metadata))
		for k, v := range d.Metadata {
			meta[k] = v
		}
		root["metadata"] = meta
	}

	shapes := make(Object, len(d.Shapes))
	for id, shape := range d.Shapes {
		shapes[string(id)] = encodeShape(shape)
	}
	root["shapes"] = shapes
	return root
}

func encodeShape(s Shape) Value {
	obj := Object{"type": String(s.Type())}

	switch shape := s.(type) {
	case *SimpleShape:
		encodeMixins(obj, shape.Mixins)
	case *ListShape:
		obj["member"] = encodeMember(shape.Member)
		encodeMixins(obj, shape.Mixins)
	case *MapShape:
		obj["key"] = encodeReference(shape.Key)
		obj["value"] = encodeReference(shape.Value)
		encodeMixins(obj, shape.Mixins)
	case *StructureShape:
		if shape.Members != nil {
			obj["members"] = encodeMemberMap(shape.Members)
		}
		encodeMixins(obj, shape.Mixins)
	case *UnionShape:
		obj["members"] = encodeMemberMap(shape.Members)
		encodeMixins(obj, shape.Mixins)
	case *EnumShape:
		obj["members"] = encodeMemberMap(shape.Members)
		encodeMixins(obj, shape.Mixins)
	case *ServiceShape:
		if shape.Version != "" {
			obj["version"] = String(shape.Version)
		}
		obj["operations"] = encodeReferenceList(shape.Operations)
		obj["resources"] = encodeReferenceList(shape.Resources)
		obj["errors"] = encodeReferenceList(shape.Errors)
		obj["traits"] = encodeTraitMap(shape.Traits)
		rename := make(Object, len(shape.Rename))
		for id, name := range shape.Rename {
			rename[string(id)] = String(name)
		}
		obj["rename"] = rename
		encodeMixins(obj, shape.Mixins)
	case *ResourceShape:
		obj["identifiers"] = encodeReferenceMap(shape.Identifiers)
		obj["properties"] = encodeReferenceMap(shape.Properties)
		obj["operations"] = encodeReferenceList(shape.Operations)
		obj["collectionOperations"] = encodeReferenceList(shape.CollectionOperations)
		obj["resources"] = encodeReferenceList(shape.Resources)
		obj["traits"] = encodeTraitMap(shape.Traits)
		for name, ref := range map[string]*Reference{
			"create": shape.Create,
			"put":    shape.Put,
			"read":   shape.Read,
			"update": shape.Update,
			"delete": shape.Delete,
			"list":   shape.List,
		} {
			if ref != nil {
				obj[name] = encodeReference(*ref)
			}
		}
		encodeMixins(obj, shape.Mixins)
	case *OperationShape:
		obj["input"] = encodeReference(shape.Input)
		obj["output"] = encodeReference(shape.Output)
		obj["errors"] = encodeReferenceList(shape.Errors)
		obj["traits"] = encodeTraitMap(shape.Traits)
		encodeMixins(obj, shape.Mixins)
	case *ApplyShape:
		traits := make(Object, len(shape.Traits))
		for id, name := range shape.Traits {
			traits[string(id)] = String(name)
		}
		obj["traits"] = traits
	}
	return obj
}

func encodeMixins(obj Object, mixins []Reference) {
	if len(mixins) > 0 {
		obj["mixins"] = encodeReferenceList(mixins)
	}
}

func encodeReference(r Reference) Value {
	return Object{"target": String(r.Target)}
}

func encodeReferenceList(refs []Reference) Value {
	arr := make(Array, len(refs))
	for i, r := range refs {
		arr[i] = encodeReference(r)
	}
	return arr
}

func encodeReferenceMap(refs map[string]Reference) Value {
	obj := make(Object, len(refs))
	for k, r := range refs {
		obj[k] = encodeReference(r)
	}
	return obj
}

func encodeMember(m Member) Value {
	obj := Object{"target": String(m.Target)}
	if len(m.Traits) > 0 {
		traits := make(Object, len(m.Traits))
		for id, v := range m.Traits {
			traits[string(id)] = v
		}
		obj["traits"] = traits
	}
	return obj
}

func encodeMemberMap(members map[Identifier]Member) Value {
	obj := make(Object, len(members))
	for name, m := range members {
		obj[string(name)] = encodeMember(m)
	}
	return obj
}

func encodeTraitMap(traits map[ShapeID]Value) Value {
	obj := make(Object, len(traits))
	for id, v := range traits {
		obj[string(id)] = v
	}
	return obj
}
