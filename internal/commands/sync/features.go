package synccmd

// FeatureGates exposes the runtime feature toggles sync command handlers
// honour. Callers supply closures reading the runtime configuration so
// handlers stay decoupled from how features are stored.
type FeatureGates struct {
	SyncEnabled func() bool
}

func (g FeatureGates) syncEnabled() bool {
	if g.SyncEnabled == nil {
		return true
	}
	return g.SyncEnabled()
}
