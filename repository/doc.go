// Package repository implements the generic CRUD contract used by every
// entity store in oaskb, backed by store.DB, plus the entity-specific
// methods (full-text search, category listing, dependency traversal) that
// don't fit the generic shape.
//
// Grounded on original_source/storage/repositories/base.py: a shared
// abstract base repository (create/create_many/get_by_id/update/delete/
// list/count/exists/get_page) with concrete per-entity subclasses adding
// domain methods. Go has no abstract base classes, so the same contract is
// expressed as a generic Base[T] parameterized by a RowMapper[T] that knows
// how to read and write one entity's columns; entity repositories embed a
// *Base[T] and add their own methods alongside it.
//
// As with store, callers construct a Filter/ListOptions value from known,
// internal field names (never directly from untrusted caller input) since
// Field strings are interpolated into generated SQL identifiers.
package repository
