package tablescmd

// FeatureGates exposes the runtime feature toggles table command handlers
// honour. Callers supply closures reading the runtime configuration so
// handlers stay decoupled from how features are stored.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
