// Package manifest is the order-preserving store for package.json.
//
// The document is kept as raw JSON and edited in place, so keys the CLI does
// not touch keep their position and new keys are appended to the end of their
// object. Reads go through gjson, edits through sjson, and Bytes formats the
// result with two-space indentation and a trailing newline.
//
// The package also validates package.json and .oxfmtrc.json documents against
// embedded JSON schemas.
package manifest
