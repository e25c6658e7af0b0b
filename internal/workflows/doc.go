// Package workflows implements the hook's check, independent of CLI concerns
// like flag parsing and output formatting.
//
// # Classification
//
// Classifier.Classify decides the outcome for one file:
//
//  1. Find the nearest .sops.yaml and load it.
//  2. With a configuration, the first creation rule whose path_regex matches
//     governs the file. The file passes if it contains the ciphertext
//     marker. Otherwise, if the rule has an encrypted_regex, the file is
//     parsed and fails only when a matching key holds a plaintext scalar.
//     Without encrypted_regex it fails. No matching rule means exempt.
//  3. Without a usable configuration, a YAML file with a "kind: secret" line
//     must contain the marker.
//  4. Anything else passes.
//
// Every outcome carries a fixed reason string (see the Reason constants).
//
// # Check
//
// Check runs the classifier over a list of files and collects failures.
// The cmd package prints the failure reasons and sets the exit status.
package workflows
