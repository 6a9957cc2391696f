package conv

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/df-mc/atomic"
	"github.com/dlclark/regexp2"
	log "github.com/sirupsen/logrus"
)

// enchantmentIDs maps the Bedrock enchantment ID to the Java enchantment identifier. The index of an entry is
// the numeric ID found in the 'ench' list of a Bedrock item.
var enchantmentIDs []string

// potionIDs maps the Bedrock potion data value to the Java potion identifier.
var potionIDs []string

//go:embed enchantments.json
var enchantmentsJSON []byte

//go:embed potions.json
var potionsJSON []byte

//go:embed renames.json
var renamesJSON []byte

// renames holds the identifier rewrite rules currently in use.
var renames atomic.Value[*ruleSet]

func init() {
	if err := loadTables(enchantmentsJSON, potionsJSON, renamesJSON); err != nil {
		log.Error("error decoding tables: ", err)
	}
}

// loadTables decodes the enchantment and potion tables and the rename rules. A table that fails to decode
// does not stop the others from being loaded.
func loadTables(enchantments, potions, rules []byte) error {
	var errs []error
	if err := json.Unmarshal(enchantments, &enchantmentIDs); err != nil {
		errs = append(errs, fmt.Errorf("decode enchantment table: %w", err))
	}
	if err := json.Unmarshal(potions, &potionIDs); err != nil {
		errs = append(errs, fmt.Errorf("decode potion table: %w", err))
	}
	if err := LoadRenames(rules); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// EnchantmentID returns the Java identifier of the Bedrock enchantment with the numeric ID passed. If the ID
// is not in the table, false is returned.
func EnchantmentID(id int) (string, bool) {
	if id < 0 || id >= len(enchantmentIDs) {
		return "", false
	}
	return enchantmentIDs[id], true
}

// PotionID returns the Java potion identifier of the Bedrock potion data value passed.
func PotionID(meta int) (string, bool) {
	if meta < 0 || meta >= len(potionIDs) {
		return "", false
	}
	return potionIDs[meta], true
}

// EnchantmentCount returns the amount of entries in the enchantment table.
func EnchantmentCount() int { return len(enchantmentIDs) }

// PotionCount returns the amount of entries in the potion table.
func PotionCount() int { return len(potionIDs) }

// renameRule is a single identifier rewrite in its JSON form.
type renameRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// renameFile is the layout of renames.json and of any file passed to LoadRenames.
type renameFile struct {
	// Items are applied to the identifier of every non-container item.
	Items []renameRule `json:"items"`
	// Containers are applied to the identifier of shulker boxes.
	Containers []renameRule `json:"containers"`
}

type compiledRule struct {
	re          *regexp2.Regexp
	replacement string
}

type ruleSet struct {
	items, containers []compiledRule
}

// LoadRenames replaces the identifier rewrite rules with the ones found in the JSON document passed. The
// document has the same layout as the embedded renames.json. Rules are applied in order, each one to the
// result of the previous one. LoadRenames should be called before any conversion starts.
func LoadRenames(f []byte) error {
	var file renameFile
	if err := json.Unmarshal(f, &file); err != nil {
		return fmt.Errorf("decode rename rules: %w", err)
	}
	items, err := compileRules(file.Items)
	if err != nil {
		return err
	}
	containers, err := compileRules(file.Containers)
	if err != nil {
		return err
	}
	renames.Store(&ruleSet{items: items, containers: containers})
	return nil
}

func compileRules(rules []renameRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp2.Compile(r.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile rename pattern %q: %w", r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, replacement: r.Replacement})
	}
	return compiled, nil
}

// rename runs the identifier through the rules passed. A rule that fails to evaluate leaves the identifier as
// it was.
func rename(name string, rules []compiledRule) string {
	for _, r := range rules {
		out, err := r.re.Replace(name, r.replacement, -1, -1)
		if err != nil {
			continue
		}
		name = out
	}
	return name
}

func itemRules() []compiledRule {
	if set := renames.Load(); set != nil {
		return set.items
	}
	return nil
}

func containerRules() []compiledRule {
	if set := renames.Load(); set != nil {
		return set.containers
	}
	return nil
}
