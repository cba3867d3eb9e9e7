// Package models defines the core domain models for moving-items.
//
// # Models
//
//   - User: an operator identified by a generated 8-digit username
//   - Item: a named thing to pack, shared by every user who records it
//   - UserItem: one user's desired and current quantity for one item
//
// # Design Principles
//
// 1. **Items are global**: an item name maps to exactly one Item row; users only own the
// UserItem rows that point at it
// 2. **No cached state**: models are plain values read from and written to the store per call
// 3. **Avoid circular references**: relationships are carried as int64 ids
package models
