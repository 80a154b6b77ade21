// Package filter reads and writes loot filter rule files.
//
// A rule file is a sequence of blocks. Each block opens with a type keyword
// ([Show], [Hide], [Minimal] or [Continue]) on an unindented line, optionally
// preceded by one or more header comments, and continues with indented
// attribute lines until the next block keyword or the end of input:
//
//	# Currency - Chaos - 1
//	Show
//	    BaseType "Chaos Orb"
//	    ItemLevel >= 60
//
// [Parse] turns text into a [Document] and [Serialize] renders it back.
// Parsing never fails: lines that cannot be represented are dropped and
// malformed attribute lines are tokenized leniently. Serialization
// normalizes whitespace, comma placement and header formatting, so
// Serialize(Parse(text)) is not byte-identical to text, but a further
// parse and serialize cycle is a no-op.
//
// # Headers
//
// Unindented comments directly above a block form its header. The last
// non-empty header line is split on " - " into category, name and priority
// (see [DecomposeHeader]). The full header text is kept in
// [Block.RawHeader] and always takes precedence over the decomposed fields
// when serializing.
//
// # Identity
//
// Every block carries an opaque [ID] drawn from an [IDGenerator]. IDs do not
// appear in the text, so re-parsing produces new ones. [Reconcile] moves the
// IDs of a previous parse onto content-equivalent blocks of a new parse so
// that state keyed by ID (expanded, focused, scrolled-to) survives a round
// trip through the raw text view.
//
// # Mutation
//
// Blocks and documents are edited through methods such as
// [Block.SetLine], [Block.AddLine] and [Document.Move] rather than by
// assigning fields, which keeps inline comment anchors consistent and
// collapses repeated [BaseType], [Class] and [Prophecy] lines into one.
//
// Parsing, serializing and reconciling hold no shared state and are safe to
// call concurrently on independent inputs. A single [Document] is not safe
// for concurrent mutation.
package filter
