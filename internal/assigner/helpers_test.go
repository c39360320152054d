package assigner

import (
	"featurepack/internal/features"
)

type recordingLogger struct {
	warnings []string
	errors   []error
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {}
func (l *recordingLogger) Info(format string, args ...interface{})  {}
func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.warnings = append(l.warnings, format)
}
func (l *recordingLogger) Error(err error, format string, args ...interface{}) {
	l.errors = append(l.errors, err)
}

type recordingMethod struct {
	id    string
	calls *[]string
	err   error
}

func (m *recordingMethod) ID() string { return m.id }

func (m *recordingMethod) AssignPackages(a *Assigner, force bool) error {
	*m.calls = append(*m.calls, m.id)
	return m.err
}

func newManager(opts []features.Option, items ...*features.ConfigurationItem) *features.Manager {
	opts = append([]features.Option{
		features.WithCollection(features.NewCollection(items...)),
		features.WithLogger(&recordingLogger{}),
	}, opts...)
	return features.NewManager(nil, opts...)
}

func newItem(name, typ, short string, data map[string]interface{}) *features.ConfigurationItem {
	opts := []features.ItemOption{}
	if typ != "" {
		opts = append(opts, features.WithType(typ))
	}
	if short != "" {
		opts = append(opts, features.WithShortName(short), features.WithLabel(short))
	}
	return features.NewConfigurationItem(name, data, opts...)
}

func dependsOn(names ...string) map[string]interface{} {
	list := make([]interface{}, 0, len(names))
	for _, n := range names {
		list = append(list, n)
	}
	return map[string]interface{}{
		"dependencies": map[string]interface{}{"config": list},
	}
}

// onlyMethods returns a bundle enabling just the given methods with their
// default settings.
func onlyMethods(machineName string, ids ...string) *features.Bundle {
	defaults := features.DefaultAssignments()
	b := &features.Bundle{MachineName: machineName, Assignments: map[string]features.AssignmentSettings{}}
	for id, s := range defaults {
		s.Enabled = false
		b.Assignments[id] = s
	}
	for _, id := range ids {
		s := defaults[id]
		s.Enabled = true
		b.Assignments[id] = s
	}
	return b
}

func owner(c *features.Collection, name string) string {
	if item, ok := c.Get(name); ok {
		return item.Package
	}
	return "<missing>"
}
