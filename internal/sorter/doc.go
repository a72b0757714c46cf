// Package sorter normalizes the order of nested values.
//
// Sort walks a value depth-first. Object fields are stably reordered by
// name, strings before symbols. Arrays keep their order unless
// SortPrimitiveArrays is set and every element is a string, every element
// is a number, or every element is a bool. Opaque values are returned by
// identity and never inspected.
//
// Every call builds its own traversal state (options, collator, cycle
// guard), so concurrent calls share nothing. Revisiting an object or array
// that is still being normalized fails the whole call with a *CycleError;
// the same object reached along two different paths is fine.
package sorter
