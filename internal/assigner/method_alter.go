package assigner

import (
	"featurepack/internal/features"
)

type alterMethod struct{}

func (m *alterMethod) ID() string { return features.MethodAlter }

// AssignPackages strips site-specific keys from every item's data so the
// exported configuration installs cleanly elsewhere.
func (m *alterMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	settings := a.Settings(features.MethodAlter).Alter
	for _, item := range c.Items() {
		item.Data = StripConfigAlterations(item, settings)
	}
	return nil
}

// StripConfigAlterations returns a copy of the item's data without the keys
// the settings ask to remove: "_core", "uuid" on config entities, and the
// permissions of user roles.
func StripConfigAlterations(item *features.ConfigurationItem, settings features.AlterSettings) map[string]interface{} {
	if item.Data == nil {
		return nil
	}
	out := make(map[string]interface{}, len(item.Data))
	for k, v := range item.Data {
		out[k] = v
	}
	if settings.Core {
		delete(out, "_core")
	}
	if settings.UUID && item.Type != features.SimpleConfig {
		delete(out, "uuid")
	}
	if settings.UserPermissions && item.Type == "user_role" {
		out["permissions"] = []interface{}{}
	}
	return out
}
