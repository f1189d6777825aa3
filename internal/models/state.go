package models

// SymbolState — последний отправленный отпечаток по символу.
type SymbolState struct {
	LastFingerprint string `json:"key"`
}

// StrategyState живёт между запусками: symbol -> SymbolState.
type StrategyState map[string]SymbolState

// Clone делает независимую копию.
func (s StrategyState) Clone() StrategyState {
	out := make(StrategyState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
