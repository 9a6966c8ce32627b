// internal/arinc/doc.go

// Package arinc encodes and decodes ARINC429 32-bit words.
//
// Three data formats are supported: two's-complement binary (BNR), binary
// coded decimal (BCD) and discrete bit fields. All functions are pure: they
// take a LabelConfig and a word or an engineering value and hold no state.
//
// # Labels
//
// Labels are written in octal (e.g. 204) and sent on the wire LSB-first.
// FormatLabel converts once, so a received word is matched with
//
//	arinc.LabelOf(word) == cfg.Label
//
// # Errors
//
// Failures wrap one of the Err* kinds and are tested with errors.Is.
// Saturation during encoding is not an error: the encoders return
// clipped=true alongside a valid word.
package arinc
