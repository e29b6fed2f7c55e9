// Package models defines the persisted document and the entities stored in
// its collections.
//
// A Document is saved and loaded as a single JSON object. Decoding merges the
// persisted top-level keys over a default Document, so payloads written by an
// older build that lack a key keep that key's default, and keys this build
// does not know about are carried through unchanged on the next save.
package models
