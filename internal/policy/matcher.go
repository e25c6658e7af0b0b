package policy

import (
	"fmt"
	"regexp"

	"github.com/PolarWolf314/sops-pre-commit/internal/configs"
	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
)

// MatchedRule is the rule governing a file.
type MatchedRule struct {
	// Index is the rule's position in creation_rules.
	Index int

	// PathRegex is the pattern that matched the file path.
	PathRegex string

	// MarkerPattern is the rule's marker_regex, empty when the default applies.
	MarkerPattern string

	// KeyPattern is the compiled encrypted_regex, nil when the rule has none.
	KeyPattern *regexp.Regexp
}

// Match returns the first rule in cfg whose path_regex matches filePath.
//
// Path patterns are searched anywhere in the path and compared without
// regard to case. Rules without a path_regex, or with one that does not
// compile, are skipped. Rule order is the only tie-break: a later, more
// specific rule never overrides an earlier match.
func Match(filePath string, cfg *configs.SopsConfig, log logger.Logger) (MatchedRule, bool) {
	if cfg == nil {
		return MatchedRule{}, false
	}

	for i, rule := range cfg.CreationRules {
		if rule.PathRegex == "" {
			log.Infof("OK: No regex defined for rule %d: %s", i, filePath)
			continue
		}

		pathRe, err := compilePath(rule.PathRegex)
		if err != nil {
			log.Warnf("Skipping rule %d in %s: %v", i, cfg.Path, err)
			continue
		}

		log.Tracef("Testing rule %d path_regex %q against %s", i, rule.PathRegex, filePath)
		if !pathRe.MatchString(filePath) {
			continue
		}

		matched := MatchedRule{
			Index:         i,
			PathRegex:     rule.PathRegex,
			MarkerPattern: rule.MarkerRegex,
		}

		if rule.EncryptedRegex != "" {
			keyRe, err := regexp.Compile(rule.EncryptedRegex)
			if err != nil {
				// The rule still governs the file; without a usable key
				// pattern only the marker can satisfy it.
				log.Warnf("Ignoring encrypted_regex of rule %d in %s: %v", i, cfg.Path,
					fmt.Errorf("%w: %v", kerrors.ErrInvalidPattern, err))
			} else {
				matched.KeyPattern = keyRe
			}
		}

		log.Debugf("Rule %d matched %s", i, filePath)
		return matched, true
	}

	return MatchedRule{}, false
}

func compilePath(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: path_regex %q: %v", kerrors.ErrInvalidPattern, pattern, err)
	}
	return re, nil
}
