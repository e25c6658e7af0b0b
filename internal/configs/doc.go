// Package configs locates and loads the policy configuration for the hook.
//
// # Policy Configuration
//
// The policy lives in .sops.yaml, the same file sops itself reads:
//
//	creation_rules:
//	  - path_regex: .*\.secret\.yaml$
//	  - path_regex: values\.yaml$
//	    encrypted_regex: ^(password|token)$
//
// Each file is governed by the configuration in its nearest ancestor
// directory (see Locate). Rules are kept in file order since the first
// matching rule wins.
//
// # Hook Settings
//
// Invocation-wide settings are read from SOPS_PRE_COMMIT_HOOK_* environment
// variables by LoadHookSettings. Command-line flags override them.
//
// # Caching
//
// Cache memoizes configurations by resolved path for one invocation, so a
// repository-wide .sops.yaml is parsed once no matter how many files it
// governs.
package configs
