// Package models holds the value types shared by the generator core:
// reflected class descriptions and planned generation targets.
package models

import (
	"slices"
	"strings"
)

// TypeCategory is the closed set of semantic type kinds the generator has
// formatting rules for.
type TypeCategory int

const (
	CategoryOther TypeCategory = iota
	CategoryText
	CategoryInteger
	CategoryLong
	CategoryDecimal
	CategoryDouble
	CategoryBoolean
	CategoryDateTime
	CategoryGuid
	CategoryDictionary
)

func (c TypeCategory) String() string {
	switch c {
	case CategoryText:
		return "text"
	case CategoryInteger:
		return "integer"
	case CategoryLong:
		return "long"
	case CategoryDecimal:
		return "decimal"
	case CategoryDouble:
		return "double"
	case CategoryBoolean:
		return "boolean"
	case CategoryDateTime:
		return "datetime"
	case CategoryGuid:
		return "guid"
	case CategoryDictionary:
		return "dictionary"
	default:
		return "other"
	}
}

// PropertyTypeDescriptor describes the semantic type of one property.
// CodeName is never empty when IsKnownType is true.
type PropertyTypeDescriptor struct {
	CodeName     string // canonical type name, "?" suffix when nullable
	Category     TypeCategory
	IsKnownType  bool
	IsArray      bool
	IsDictionary bool
	IsOptional   bool
}

// Nullable reports whether the code name carries the nullable marker.
func (t PropertyTypeDescriptor) Nullable() bool {
	return strings.HasSuffix(t.CodeName, "?")
}

// BaseName returns the code name without the nullable marker.
func (t PropertyTypeDescriptor) BaseName() string {
	return strings.TrimSuffix(t.CodeName, "?")
}

// PropertyDescriptor is one reflected member of a class.
type PropertyDescriptor struct {
	Name string
	Type PropertyTypeDescriptor
}

// ClassDescriptor is an immutable description of a source class.
// Properties keep their discovery order; generated fragments follow it.
type ClassDescriptor struct {
	Name       string
	BaseName   string
	Properties []PropertyDescriptor
}

// IsEntity reports whether the class derives from one of the base markers
// without being a marker itself.
func (c ClassDescriptor) IsEntity(markers []string) bool {
	return slices.Contains(markers, c.BaseName) && !slices.Contains(markers, c.Name)
}

// KnownProperties returns the properties with a known type, in order.
func (c ClassDescriptor) KnownProperties() []PropertyDescriptor {
	known := make([]PropertyDescriptor, 0, len(c.Properties))
	for _, p := range c.Properties {
		if p.Type.IsKnownType {
			known = append(known, p)
		}
	}
	return known
}
