// Package scan inspects file content for sops ciphertext and for sensitive
// keys left in plaintext.
//
// Two independent checks are provided:
//
//   - ContainsMarker searches raw text for the ciphertext marker, by default
//     ENC[AES256, case-insensitively and across lines.
//   - FindUnencryptedKey walks a parsed document and reports the first key
//     matching a sensitivity pattern whose value is a plain scalar.
//
// # Documents
//
// ParseDocuments turns YAML or JSON into Node trees. Mapping pairs keep their
// source order, so the key reported by FindUnencryptedKey is deterministic.
//
// # Known Limitation
//
// Scalars inside sequences are never checked. In
//
//	password:
//	  - hunter2
//
// the key "password" holds a sequence, not a scalar, and the string inside
// the sequence has no key of its own. Such a document is reported as clean.
package scan
