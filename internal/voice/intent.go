package voice

// Module routes an intent to the domain that owns it.
const (
	ModuleSuppliers = "buying.suppliers"
	ModuleCustomers = "selling.customers"
	ModuleAssets    = "assets"
	ModuleUnknown   = "unknown"
)

const (
	ActionCreate  = "create"
	ActionUnknown = "unknown"
)

// Intent is the parsed form of one free-text command. Fields holds every
// vocabulary key the module knows about; absent keys are present with a nil
// value so callers can distinguish "not spoken" from "spoken but empty".
type Intent struct {
	Module  string          `json:"module"`
	Action  string          `json:"action"`
	Fields  map[string]any  `json:"fields"`
	Missing map[string]bool `json:"missing"`
	Ready   bool            `json:"ready"`
	Exec    *ExecResult     `json:"exec,omitempty"`
}

// ExecResult reports what Dispatch did with a ready intent.
type ExecResult struct {
	OK      bool   `json:"ok"`
	Created any    `json:"created,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (i Intent) strField(key string) *string {
	v, ok := i.Fields[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func (i Intent) numField(key string) *float64 {
	v, ok := i.Fields[key]
	if !ok || v == nil {
		return nil
	}
	n, ok := v.(float64)
	if !ok {
		return nil
	}
	return &n
}
