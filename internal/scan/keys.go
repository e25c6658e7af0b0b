package scan

import (
	"regexp"
	"strconv"
)

// Finding is a sensitive key holding a plaintext scalar.
type Finding struct {
	// Key is the matching key name.
	Key string

	// Path locates the key from the document root, e.g. "db.users[0].password".
	Path string

	// Value is the scalar the key holds.
	Value any
}

// FindUnencryptedKey walks root depth-first in document order and returns the
// first key matching keyPattern whose value is a scalar.
//
// Mapping values are always descended into. Sequence elements are descended
// into only when they are mappings or sequences; scalar elements have no key
// of their own and are never reported. A root that is not a mapping has no
// keys and never matches.
func FindUnencryptedKey(root Node, keyPattern *regexp.Regexp) (Finding, bool) {
	if root.Kind != MappingNode {
		return Finding{}, false
	}
	return findInMapping(root, keyPattern, "")
}

func findInMapping(n Node, keyPattern *regexp.Regexp, prefix string) (Finding, bool) {
	for _, pair := range n.Pairs {
		path := pair.Key
		if prefix != "" {
			path = prefix + "." + pair.Key
		}

		switch pair.Value.Kind {
		case MappingNode:
			if f, ok := findInMapping(pair.Value, keyPattern, path); ok {
				return f, true
			}
		case SequenceNode:
			if f, ok := findInSequence(pair.Value, keyPattern, path); ok {
				return f, true
			}
		default:
			if keyPattern.MatchString(pair.Key) {
				return Finding{Key: pair.Key, Path: path, Value: pair.Value.Value}, true
			}
		}
	}
	return Finding{}, false
}

func findInSequence(n Node, keyPattern *regexp.Regexp, prefix string) (Finding, bool) {
	for i, item := range n.Items {
		path := prefix + "[" + strconv.Itoa(i) + "]"

		switch item.Kind {
		case MappingNode:
			if f, ok := findInMapping(item, keyPattern, path); ok {
				return f, true
			}
		case SequenceNode:
			if f, ok := findInSequence(item, keyPattern, path); ok {
				return f, true
			}
		}
	}
	return Finding{}, false
}
