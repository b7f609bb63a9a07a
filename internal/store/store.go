// Package store loads the external categorization rule tables. Recipient
// rules and keyword groups live in YAML files next to the binary or under
// the user config directory, never in the source tree, so the shipped
// binary carries no personal data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"ybarda/heshbon/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore manages loading and saving of categorization rule data.
type RuleStore struct {
	RecipientsFile string
	KeywordsFile   string
}

// NewRuleStore creates a store for the rule tables. Empty filenames fall
// back to the default names.
func NewRuleStore(recipientsFile, keywordsFile string) *RuleStore {
	return &RuleStore{
		RecipientsFile: recipientsFile,
		KeywordsFile:   keywordsFile,
	}
}

// recipientsDocument is the on-disk shape of the recipients file. Rule order
// in the file is the match order, so later catch-alls must stay last.
type recipientsDocument struct {
	Rules []models.RecipientRule `yaml:"rules"`
}

// keywordsDocument is the on-disk shape of the keywords file.
type keywordsDocument struct {
	Groups []models.KeywordGroup `yaml:"groups"`
}

// FindConfigFile looks for a rule file in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                          // current directory
		filepath.Join("config", filename), // ./config/ directory
		filepath.Join("rules", filename),  // ./rules/ directory
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "heshbon", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRecipientRules loads the ordered recipient rule table. A missing file
// is not an error: categorization then runs on the built-in keyword tiers
// alone.
func (s *RuleStore) LoadRecipientRules() ([]models.RecipientRule, error) {
	filename := s.RecipientsFile
	if filename == "" {
		filename = "recipients.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Recipient rules file not found: %s", filename)
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving recipient rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading recipient rules file: %w", err)
	}

	var doc recipientsDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Rules) > 0 {
		log.Debugf("Loaded %d recipient rules from %s", len(doc.Rules), filePath)
		return doc.Rules, nil
	}

	// Bare top-level list without the "rules" key.
	var rules []models.RecipientRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing recipient rules: %w", err)
	}
	log.Debugf("Loaded %d recipient rules from %s", len(rules), filePath)
	return rules, nil
}

// LoadKeywordGroups loads keyword overrides. A missing file yields nil and
// the engine keeps its built-in bilingual table.
func (s *RuleStore) LoadKeywordGroups() ([]models.KeywordGroup, error) {
	filename := s.KeywordsFile
	if filename == "" {
		filename = "keywords.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Keyword groups file not found, using built-in table: %s", filename)
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving keyword groups file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading keyword groups file: %w", err)
	}

	var doc keywordsDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Groups) > 0 {
		log.Debugf("Loaded %d keyword groups from %s", len(doc.Groups), filePath)
		return doc.Groups, nil
	}

	// Bare top-level list without the "groups" key.
	var groups []models.KeywordGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("error parsing keyword groups: %w", err)
	}
	log.Debugf("Loaded %d keyword groups from %s", len(groups), filePath)
	return groups, nil
}

// SaveRecipientRules writes the rule table back out, preserving order.
func (s *RuleStore) SaveRecipientRules(rules []models.RecipientRule) error {
	filename := s.RecipientsFile
	if filename == "" {
		filename = "recipients.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving recipient rules file: %w", err)
	}
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("rules", filename)
		} else {
			filePath = filename
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(recipientsDocument{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling recipient rules: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing recipient rules: %w", err)
	}

	log.Debugf("Saved %d recipient rules to %s", len(rules), filePath)
	return nil
}
