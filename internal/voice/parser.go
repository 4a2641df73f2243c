package voice

import (
	"regexp"
	"strconv"
	"strings"
)

// vocabulary lists every key the positional scanner recognizes. A value runs
// from just after its key to the start of the next vocabulary key, so adding
// a key here changes where earlier values stop.
var vocabulary = []string{
	"name", "phone", "email", "address", "location",
	"purchase_cost", "current_value", "quantity",
	"so_number", "order_date", "items",
}

var (
	reSupplier = regexp.MustCompile(`(?i)(add|create)\s+supplier`)
	reCustomer = regexp.MustCompile(`(?i)(add|create)\s+customer`)
	reAsset    = regexp.MustCompile(`(?i)(add|create)\s+asset`)

	// boundary marks where the next key begins: whitespace, a vocabulary
	// word, whitespace. RE2 has no lookahead, so extraction slices the text
	// at the boundary instead of asserting it.
	reBoundary = regexp.MustCompile(`(?i)\s+(` + strings.Join(vocabulary, "|") + `)\s+`)

	reNonNumeric = regexp.MustCompile(`[^0-9.]`)
)

// extract returns the value spoken after key, or nil when the key is absent.
// The value ends at the next vocabulary key, the end of the line, or the end
// of the text, whichever comes first.
func extract(text, key string) *string {
	keyRe := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `\s+`)
	loc := keyRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	rest := text[loc[1]:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if b := reBoundary.FindStringIndex(rest); b != nil {
		rest = rest[:b[0]]
	}

	value := strings.TrimSpace(rest)
	if value == "" {
		return nil
	}
	return &value
}

// extractNumber strips everything but digits and dots from the value and
// parses it; junk-only or unparseable values come back as nil.
func extractNumber(text, key string) *float64 {
	raw := extract(text, key)
	if raw == nil {
		return nil
	}
	cleaned := reNonNumeric.ReplaceAllString(*raw, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}

func anyStr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func anyNum(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Parse turns a free-text command into an Intent. It is a pure function: no
// store access, no tenant checks. Triggers are tested in order and the first
// match wins, so "add supplier for customer X" routes to suppliers.
func Parse(text string) Intent {
	text = strings.TrimSpace(text)

	switch {
	case reSupplier.MatchString(text):
		name := extract(text, "name")
		if name == nil {
			name = extract(text, "supplier name")
		}
		return contactIntent(ModuleSuppliers, text, name)

	case reCustomer.MatchString(text):
		return contactIntent(ModuleCustomers, text, extract(text, "name"))

	case reAsset.MatchString(text):
		cost := extractNumber(text, "purchase_cost")
		if cost == nil {
			cost = extractNumber(text, "cost")
		}
		name := extract(text, "name")
		intent := Intent{
			Module: ModuleAssets,
			Action: ActionCreate,
			Fields: map[string]any{
				"name":          anyStr(name),
				"location":      anyStr(extract(text, "location")),
				"purchase_cost": anyNum(cost),
				"current_value": anyNum(extractNumber(text, "current_value")),
			},
			Missing: map[string]bool{},
		}
		if name == nil {
			intent.Missing["name"] = true
		}
		intent.Ready = len(intent.Missing) == 0
		return intent
	}

	return Intent{
		Module:  ModuleUnknown,
		Action:  ActionUnknown,
		Fields:  map[string]any{},
		Missing: map[string]bool{"unknown": true},
		Ready:   false,
	}
}

func contactIntent(module, text string, name *string) Intent {
	intent := Intent{
		Module: module,
		Action: ActionCreate,
		Fields: map[string]any{
			"name":    anyStr(name),
			"phone":   anyStr(extract(text, "phone")),
			"email":   anyStr(extract(text, "email")),
			"address": anyStr(extract(text, "address")),
		},
		Missing: map[string]bool{},
	}
	if name == nil {
		intent.Missing["name"] = true
	}
	intent.Ready = len(intent.Missing) == 0
	return intent
}
