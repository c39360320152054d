package assigner

import (
	"errors"
	"fmt"
	"sort"

	"featurepack/internal/features"
	"featurepack/pkg/logging"

	"github.com/google/uuid"
)

// ErrUnknownMethod is returned when a method id has no registered implementation.
var ErrUnknownMethod = errors.New("unknown assignment method")

// Method is one assignment strategy. Implementations claim configuration
// items into packages through the Assigner's manager.
type Method interface {
	ID() string
	AssignPackages(a *Assigner, force bool) error
}

// Assigner runs the enabled assignment methods of a bundle against a
// features.Manager.
type Assigner struct {
	manager   *features.Manager
	bundle    *features.Bundle
	methods   map[string]Method
	logger    features.Logger
	sessionID string
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithMethod registers an additional method, replacing a built-in one with
// the same id.
func WithMethod(m Method) Option {
	return func(a *Assigner) { a.methods[m.ID()] = m }
}

// WithLogger sets the assigner's logger.
func WithLogger(l features.Logger) Option {
	return func(a *Assigner) { a.logger = l }
}

// New creates an assigner for bundle with every built-in method registered.
// A nil bundle means the default bundle.
func New(manager *features.Manager, bundle *features.Bundle, opts ...Option) *Assigner {
	if bundle == nil {
		bundle = features.NewDefaultBundle()
	}
	a := &Assigner{
		manager: manager,
		bundle:  bundle,
		methods: make(map[string]Method),
		logger:  logging.ForSubsystem("Assigner"),
	}
	for _, m := range builtinMethods() {
		a.methods[m.ID()] = m
	}
	for _, opt := range opts {
		opt(a)
	}
	manager.SetBundle(bundle)
	return a
}

func builtinMethods() []Method {
	return []Method{
		&alterMethod{},
		&baseMethod{},
		&coreMethod{},
		&dependencyMethod{},
		&excludeMethod{},
		&existingMethod{},
		&forwardDependencyMethod{},
		&namespaceMethod{},
		&optionalMethod{},
		&packagesMethod{},
		&profileMethod{},
		&siteMethod{},
	}
}

// Register adds a method. Registering an id twice is an error.
func (a *Assigner) Register(m Method) error {
	if m == nil {
		return fmt.Errorf("cannot register nil method")
	}
	id := m.ID()
	if id == "" {
		return fmt.Errorf("method has empty id")
	}
	if _, exists := a.methods[id]; exists {
		return fmt.Errorf("method %s already registered", id)
	}
	a.methods[id] = m
	return nil
}

// Methods returns the registered method ids, sorted.
func (a *Assigner) Methods() []string {
	ids := make([]string, 0, len(a.methods))
	for id := range a.methods {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Manager returns the features manager the assigner works on.
func (a *Assigner) Manager() *features.Manager {
	return a.manager
}

// Bundle returns the bundle whose policy is applied.
func (a *Assigner) Bundle() *features.Bundle {
	return a.bundle
}

// Logger returns the assigner's logger.
func (a *Assigner) Logger() features.Logger {
	return a.logger
}

// SessionID identifies the last Run in log output.
func (a *Assigner) SessionID() string {
	return a.sessionID
}

// Settings returns the bundle settings of method id.
func (a *Assigner) Settings(id string) features.AssignmentSettings {
	return a.bundle.AssignmentSettings(id)
}

// ApplyAssignmentMethod runs a single method regardless of whether the
// bundle enables it.
func (a *Assigner) ApplyAssignmentMethod(id string, force bool) error {
	m, ok := a.methods[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, id)
	}
	a.logger.Debug("Applying assignment method %s", id)
	if err := m.AssignPackages(a, force); err != nil {
		return fmt.Errorf("assignment method %s failed: %w", id, err)
	}
	return nil
}

// AssignConfigPackages runs the bundle's enabled methods in ascending weight
// order and then drops packages that ended up empty. Methods the bundle
// enables but nobody registered are skipped with a warning.
func (a *Assigner) AssignConfigPackages(force bool) error {
	for _, enabled := range a.bundle.EnabledAssignments() {
		if _, ok := a.methods[enabled.ID]; !ok {
			a.logger.Warn("Assignment method %s is enabled but not available, skipping", enabled.ID)
			continue
		}
		if err := a.ApplyAssignmentMethod(enabled.ID, force); err != nil {
			return err
		}
	}
	a.Cleanup()
	return nil
}

// Cleanup removes packages that have nothing to export and were not
// previously exported.
func (a *Assigner) Cleanup() []string {
	removed := a.manager.Cleanup()
	if len(removed) > 0 {
		a.logger.Debug("Removed empty packages: %v", removed)
	}
	return removed
}

// Run performs a complete assignment session: it drops previous packages,
// reloads the configuration, runs every enabled method, prefixes package names with the bundle and
// resolves inter-package dependencies. The returned map is keyed by package
// machine name.
func (a *Assigner) Run(force bool) (map[string]*features.Package, error) {
	a.sessionID = uuid.New().String()
	a.logger.Info("Starting assignment session %s for bundle %s", a.sessionID, a.bundleName())

	a.manager.SetBundle(a.bundle)
	a.manager.Reset()
	if _, err := a.manager.ConfigCollection(true); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := a.AssignConfigPackages(force); err != nil {
		return nil, err
	}

	packages := a.manager.SetPackageBundleNames(a.bundle)
	if err := a.manager.AssignInterPackageDependencies(a.bundle, packages); err != nil {
		return nil, fmt.Errorf("failed to resolve package dependencies: %w", err)
	}

	a.logger.Info("Assignment session %s produced %d packages", a.sessionID, len(packages))
	return packages, nil
}

func (a *Assigner) bundleName() string {
	if a.bundle.IsDefault() {
		return features.DefaultBundleName
	}
	return a.bundle.MachineName
}

// collection returns the manager's collection, loading it when needed.
func (a *Assigner) collection() (*features.Collection, error) {
	c, err := a.manager.ConfigCollection(false)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return c, nil
}

// itemsOfTypes returns the items whose type is listed, ordered by name.
func itemsOfTypes(c *features.Collection, types []string) []*features.ConfigurationItem {
	if len(types) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	var out []*features.ConfigurationItem
	for _, item := range c.Items() {
		if wanted[item.Type] {
			out = append(out, item)
		}
	}
	return out
}

func itemNames(items []*features.ConfigurationItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

// assignTyped gathers the items of the method's configured types into the
// package machineName, creating it only when there is something to assign.
func (a *Assigner) assignTyped(methodID, machineName, name, description string, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	items := itemsOfTypes(c, a.Settings(methodID).Types.Config)
	if len(items) == 0 {
		return nil
	}
	a.manager.InitPackage(machineName, name, description, features.TypeModule, a.bundle)
	a.manager.AssignConfigPackageSafe(machineName, itemNames(items), force)
	return nil
}
