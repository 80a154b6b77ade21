// Package settings persists user preferences for the lootfilter tools.
//
// Settings live in a TOML file, by default "lootfilter/settings.toml" under
// the XDG config home:
//
//	root = "/home/exile/filters"
//	extension = ".filter"
//	line_ending = "crlf"
//	ids = "uuid"
//
// A missing file is not an error; [Load] returns [Default] instead. Keys
// absent from the file keep their default values. [Config] layers CLI flags
// on top of the file.
package settings
