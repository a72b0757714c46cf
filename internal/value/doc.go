// Package value provides the universal value representation for deepsort.
//
// This package contains the tagged union the sorter operates over plus the
// boundary helpers around it. All other internal packages import value;
// value imports nothing internal.
//
// Key design constraints:
//   - Closed variant set: Null, String, Number, Bool, Array, *Object, *Opaque
//   - Object fields are ordered; the order IS the observable result of sorting
//   - *Object, *Opaque and *Symbol carry identity through their pointers
//   - Serialization emits fields in stored order, it never re-sorts
package value
