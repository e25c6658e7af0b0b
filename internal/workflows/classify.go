package workflows

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/sops-pre-commit/internal/configs"
	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
	"github.com/PolarWolf314/sops-pre-commit/internal/policy"
	"github.com/PolarWolf314/sops-pre-commit/internal/scan"
	"github.com/PolarWolf314/sops-pre-commit/internal/utils"
)

// Status is the outcome of classifying one file.
type Status string

const (
	// StatusPass means the file satisfies the policy that applies to it.
	StatusPass Status = "pass"
	// StatusExempt means a configuration exists but no rule governs the file.
	StatusExempt Status = "exempt"
	// StatusFail means the file must be encrypted and is not.
	StatusFail Status = "fail"
)

// Reasons reported for each outcome. Every one takes the file path.
const (
	ReasonEncrypted       = "OK: File is encrypted: %s"
	ReasonNotRequired     = "OK: Encryption not required for this content: %s"
	ReasonNotKindSecret   = "OK: Not kind secret: %s"
	ReasonNotSecretFile   = "OK: Not secret file: %s"
	ReasonExcluded        = "OK: Excluded: %s"
	ReasonNotEncrypted    = "NOT encrypted: %s"
	ReasonKeyNotEncrypted = "Key found and NOT encrypted: %s: %s"
	ReasonNotParseable    = "NOT parseable and NOT encrypted: %s"
	ReasonUnreadable      = "NOT readable: %s"
	ReasonInvalidMarker   = "NOT verifiable, invalid marker pattern: %s"
)

// Result is the classification of one file.
type Result struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// OK reports whether the file passed or is exempt.
func (r Result) OK() bool {
	return r.Status != StatusFail
}

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	// ConfigName is the policy file name searched for. Defaults to .sops.yaml.
	ConfigName string

	// Marker overrides scan.DefaultMarkerPattern for rules without
	// marker_regex and for the Kubernetes Secret heuristic.
	Marker string

	// Exclude lists doublestar globs of paths that are never checked.
	Exclude []string
}

// Classifier decides, file by file, whether encryption policy is met.
// It is safe for concurrent use.
type Classifier struct {
	configs *configs.Cache
	marker  string
	exclude []string
	log     logger.Logger
}

// NewClassifier validates opts and returns a classifier.
func NewClassifier(opts ClassifierOptions, log logger.Logger) (*Classifier, error) {
	marker := opts.Marker
	if marker == "" {
		marker = scan.DefaultMarkerPattern
	}
	if _, err := scan.CompileMarker(marker); err != nil {
		return nil, err
	}

	if err := utils.ValidateGlobs(opts.Exclude); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPattern, err)
	}

	return &Classifier{
		configs: configs.NewCache(opts.ConfigName, log),
		marker:  marker,
		exclude: opts.Exclude,
		log:     log,
	}, nil
}

// Classify checks a single file.
//
// A file governed by a creation rule passes when it carries the rule's
// ciphertext marker, or, for rules with encrypted_regex, when no sensitive
// key holds a plaintext scalar. A file under a configuration that no rule
// matches is exempt. Without a usable configuration, YAML files declaring
// "kind: secret" must carry the default marker. Everything else passes.
func (c *Classifier) Classify(path string) Result {
	c.log.Debugf("Checking %s", path)

	if utils.MatchesAnyGlob(path, c.exclude) {
		return exempt(ReasonExcluded, path)
	}

	cfg, err := c.configs.Nearest(path)
	switch {
	case err == nil:
		return c.classifyWithConfig(path, cfg)
	case errors.Is(err, kerrors.ErrConfigNotFound):
		c.log.Debugf("No sops configuration found for %s", path)
	default:
		c.log.Warnf("Ignoring sops configuration for %s: %v", path, err)
	}

	if scan.IsYAMLFileName(path) {
		return c.classifyKindSecret(path)
	}

	c.log.Infof(ReasonNotSecretFile, path)
	return pass(ReasonNotSecretFile, path)
}

func (c *Classifier) classifyWithConfig(path string, cfg *configs.SopsConfig) Result {
	rule, ok := policy.Match(path, cfg, c.log)
	if !ok {
		c.log.Infof(ReasonNotSecretFile, path)
		return exempt(ReasonNotSecretFile, path)
	}

	text, ok := c.read(path)
	if !ok {
		return fail(ReasonUnreadable, path)
	}

	marker := rule.MarkerPattern
	if marker == "" {
		marker = c.marker
	}

	encrypted, err := scan.ContainsMarker(text, marker)
	if err != nil {
		c.log.Errorf("Rule %d in %s: %v", rule.Index, cfg.Path, err)
		return fail(ReasonInvalidMarker, path)
	}
	if encrypted {
		c.log.Debugf(ReasonEncrypted, path)
		return pass(ReasonEncrypted, path)
	}

	if rule.KeyPattern == nil {
		c.log.Debugf(ReasonNotEncrypted, path)
		return fail(ReasonNotEncrypted, path)
	}

	return c.classifyKeys(path, text, rule)
}

// classifyKeys scans every document in the file for a sensitive key with a
// plaintext value.
func (c *Classifier) classifyKeys(path, text string, rule policy.MatchedRule) Result {
	docs, err := scan.ParseDocuments([]byte(text))
	if err != nil {
		c.log.Debugf("%s: %v", path, err)
		return fail(ReasonNotParseable, path)
	}

	for i, doc := range docs {
		if doc.Kind != scan.MappingNode {
			c.log.Debugf("Document %d of %s is a %s, no keys to check", i, path, doc.Kind)
			continue
		}

		if finding, found := scan.FindUnencryptedKey(doc, rule.KeyPattern); found {
			c.log.Debugf("Key %q matches %q in %s", finding.Path, rule.KeyPattern, path)
			return Result{
				Path:   path,
				Status: StatusFail,
				Reason: fmt.Sprintf(ReasonKeyNotEncrypted, path, finding.Path),
			}
		}
	}

	c.log.Debugf(ReasonNotRequired, path)
	return pass(ReasonNotRequired, path)
}

func (c *Classifier) classifyKindSecret(path string) Result {
	c.log.Debugf("Check that file kind:secret and is encrypted %s", path)

	text, ok := c.read(path)
	if !ok {
		return fail(ReasonUnreadable, path)
	}

	if !scan.IsKindSecret(text) {
		c.log.Infof(ReasonNotKindSecret, path)
		return pass(ReasonNotKindSecret, path)
	}

	// The marker was compiled by NewClassifier.
	if encrypted, _ := scan.ContainsMarker(text, c.marker); encrypted {
		c.log.Debugf(ReasonEncrypted, path)
		return pass(ReasonEncrypted, path)
	}

	c.log.Debugf(ReasonNotEncrypted, path)
	return fail(ReasonNotEncrypted, path)
}

func (c *Classifier) read(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		c.log.Debugf("%v: %v", kerrors.ErrFileUnreadable, err)
		return "", false
	}
	return string(content), true
}

func pass(reason, path string) Result {
	return Result{Path: path, Status: StatusPass, Reason: fmt.Sprintf(reason, path)}
}

func exempt(reason, path string) Result {
	return Result{Path: path, Status: StatusExempt, Reason: fmt.Sprintf(reason, path)}
}

func fail(reason, path string) Result {
	return Result{Path: path, Status: StatusFail, Reason: fmt.Sprintf(reason, path)}
}
