// Package model defines the value types shared by the widget, its validators
// and its renderers: field definitions, the per-field value map, the per-field
// error map and the view state enumeration. Fields are a tagged union over
// FieldKind; renderers switch over Field.Variant rather than comparing kind
// strings so adding a kind forces every renderer to handle it.
package model
