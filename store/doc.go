// Package store manages loot filter files under a single root directory.
//
// All names passed to a [Store] are slash-separated paths relative to its
// root, and must stay inside it. [Store.Scan] discovers filter files
// recursively by extension:
//
//	s := store.New(root, store.WithExtension(".filter"))
//	names, err := s.Scan()
//	// names: ["league/strict.filter", "starter.filter"]
package store
