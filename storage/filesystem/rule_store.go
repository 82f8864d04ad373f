package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/storage"
)

// RuleStore reads rules from a single XML file, or from all the *.xml files
// of a directory, in name order.
type RuleStore struct {
	path string
}

var _ storage.RuleReader = (*RuleStore)(nil)

func NewRuleStore(path string) *RuleStore {
	return &RuleStore{path: path}
}

func (rs *RuleStore) ReadAll() (rule.Set, error) {
	info, err := os.Stat(rs.path)
	if err != nil {
		return nil, fmt.Errorf("rules not found: %w", err)
	}

	if !info.IsDir() {
		return ReadRules(rs.path)
	}

	names, err := rs.names()
	if err != nil {
		return nil, err
	}

	set := rule.Set{}
	for _, n := range names {
		rules, err := ReadRules(filepath.Join(rs.path, n))
		if err != nil {
			return nil, err
		}

		set = append(set, rules...)
	}

	return set, nil
}

// Names returns the rule files of the store.
func (rs *RuleStore) Names() ([]string, error) {
	info, err := os.Stat(rs.path)
	if err != nil {
		return nil, fmt.Errorf("rules not found: %w", err)
	}

	if !info.IsDir() {
		return []string{filepath.Base(rs.path)}, nil
	}

	return rs.names()
}

func (rs *RuleStore) names() ([]string, error) {
	files, err := os.ReadDir(rs.path)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".xml" {
			continue
		}

		names = append(names, file.Name())
	}

	sort.Strings(names)
	return names, nil
}

// ReadRules loads the rule file at path.
func ReadRules(path string) (rule.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	set, err := rule.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return set, nil
}
