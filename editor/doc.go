// Package editor holds the state behind a loot filter editing surface.
//
// A [Session] owns one [filter.Document] and switches between a text view
// and a structured view of it. Every time the text changes, the session
// reparses it and reconciles block identities with the previous parse, so
// per-block UI state such as expansion and focus survives edits to other
// blocks. State that belongs to blocks which no longer exist is dropped.
//
//	s := editor.NewSession(text)
//	s.Expand(s.Blocks()[0].ID)
//	s.SetText(edited) // The first block stays expanded if it is unchanged.
//
// All methods are safe for concurrent use.
package editor
