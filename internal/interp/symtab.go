package interp

// Symbol is an interned identifier. Symbols are dense small
// integers so scope-analysis sets and binding tables can use them as
// slice indices; Name recovers the original spelling.
type Symbol int

// SymbolTable interns identifier strings to Symbols. A Context owns
// exactly one table for its whole lifetime; interning is idempotent and
// the zero Symbol is never handed out (it is reserved as "no symbol").
type SymbolTable struct {
	byName map[string]Symbol
	names  []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: make(map[string]Symbol),
		names:  []string{""}, // reserve Symbol 0
	}
}

// Intern returns the Symbol for name, creating one on first use.
func (t *SymbolTable) Intern(name string) Symbol {
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := Symbol(len(t.names))
	t.names = append(t.names, name)
	t.byName[name] = s
	return s
}

// Name returns the spelling of s, or "" for an unknown or zero Symbol.
func (t *SymbolTable) Name(s Symbol) string {
	if s <= 0 || int(s) >= len(t.names) {
		return ""
	}
	return t.names[s]
}

// Len reports how many symbols have been interned (excluding the reserved
// zero entry).
func (t *SymbolTable) Len() int { return len(t.names) - 1 }
