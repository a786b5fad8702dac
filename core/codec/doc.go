// Package codec reads and writes compaction artifacts.
//
// JSON is the reference encoding: groups, fields and field names are ordered
// objects and the stats' compacted size is measured on it. CBOR uses Core
// Deterministic Encoding (RFC 8949 §4.2) over the plain struct layout, so
// equal artifacts produce identical bytes.
//
// Decode validates the artifact before returning it.
package codec
