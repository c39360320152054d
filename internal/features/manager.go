package features

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"featurepack/internal/dependency"
	"featurepack/internal/extension"
	"featurepack/pkg/logging"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCore is the compatibility tag given to new packages.
const DefaultCore = "^10 || ^11"

// patternSkips lists item names no pattern may claim even though the
// separator-anchored match succeeds.
var patternSkips = []*regexp.Regexp{
	regexp.MustCompile(`block\.block\..*_page_title`),
}

// Manager owns the configuration collection and the package set of one
// assignment session. It is not safe for concurrent use; run one Manager per
// session or clone the collection.
type Manager struct {
	store      ConfigStore
	graph      DependencyGraph
	extensions ExtensionRegistry
	types      *TypeRegistry
	logger     Logger
	core       string

	snapshot         *Collection
	stale            bool
	collection       *Collection
	packages         map[string]*Package
	packagesPrefixed bool
	bundle           *Bundle
}

// Option configures a Manager.
type Option func(*Manager)

// WithDependencyGraph sets the graph used to compute dependents. Without it a
// graph is built from the dependencies declared in the loaded documents.
func WithDependencyGraph(g DependencyGraph) Option {
	return func(m *Manager) { m.graph = g }
}

// WithExtensions sets the extension registry used for providers and existing
// packages.
func WithExtensions(r ExtensionRegistry) Option {
	return func(m *Manager) { m.extensions = r }
}

// WithTypes replaces the default configuration type registry.
func WithTypes(t *TypeRegistry) Option {
	return func(m *Manager) { m.types = t }
}

// WithLogger sets the diagnostics sink.
func WithLogger(l Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithCore sets the compatibility tag of new packages.
func WithCore(core string) Option {
	return func(m *Manager) { m.core = core }
}

// WithCollection installs an already built collection, skipping the store.
// Reloads start every later session from a deep copy of c.
func WithCollection(c *Collection) Option {
	return func(m *Manager) {
		m.snapshot = c
		m.collection = c
	}
}

// NewManager creates a manager reading from store. store may be nil when a
// collection is supplied with WithCollection.
func NewManager(store ConfigStore, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		types:    DefaultTypeRegistry(),
		logger:   logging.ForSubsystem("Features"),
		core:     DefaultCore,
		packages: make(map[string]*Package),
		bundle:   NewDefaultBundle(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Types returns the configuration type registry.
func (m *Manager) Types() *TypeRegistry {
	return m.types
}

// Extensions returns the extension registry, which may be nil.
func (m *Manager) Extensions() ExtensionRegistry {
	return m.extensions
}

// Logger returns the manager's logger.
func (m *Manager) Logger() Logger {
	return m.logger
}

// Bundle returns the bundle of the current session.
func (m *Manager) Bundle() *Bundle {
	return m.bundle
}

// SetBundle sets the bundle of the current session.
func (m *Manager) SetBundle(b *Bundle) {
	if b == nil {
		b = NewDefaultBundle()
	}
	m.bundle = b
}

// Reset drops every package and clears all item assignments without
// reloading the store.
func (m *Manager) Reset() {
	m.packages = make(map[string]*Package)
	m.packagesPrefixed = false
	if m.collection != nil {
		m.collection.Reset()
	}
}

// ConfigCollection returns the item collection of the current session. The
// store is read on first use and again after Invalidate; every other reset
// starts the session from a deep copy of the last read, so assignment state
// never leaks between sessions. Resetting discards all packaging progress.
func (m *Manager) ConfigCollection(reset bool) (*Collection, error) {
	if m.collection != nil && !reset {
		return m.collection, nil
	}
	if m.snapshot == nil || m.stale {
		if m.store == nil {
			if m.snapshot == nil {
				return nil, errors.New("no configuration store configured")
			}
		} else {
			loaded, err := m.loadCollection()
			if err != nil {
				return nil, err
			}
			m.snapshot = loaded
		}
		m.stale = false
	}
	c, err := m.snapshot.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	m.collection = c
	return c, nil
}

// Invalidate makes the next reset read the store again.
func (m *Manager) Invalidate() {
	m.stale = true
}

// SetConfigCollection replaces the collection and the snapshot later
// sessions start from.
func (m *Manager) SetConfigCollection(c *Collection) {
	m.snapshot = c
	m.collection = c
}

// collectionOrEmpty is used by operations that tolerate a missing store.
func (m *Manager) collectionOrEmpty() *Collection {
	c, err := m.ConfigCollection(false)
	if err != nil {
		m.logger.Error(err, "Failed to load configuration collection")
		return NewCollection()
	}
	return c
}

func (m *Manager) loadCollection() (*Collection, error) {
	typed := make(map[string]string)
	for _, t := range m.types.List() {
		names, err := m.store.ListAll(t.Prefix + ".")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s configuration: %w", t.ID, err)
		}
		for _, name := range names {
			// longest prefix wins when type prefixes nest
			if current, ok := typed[name]; ok {
				if ct, _ := m.types.Get(current); len(ct.Prefix) >= len(t.Prefix) {
					continue
				}
			}
			typed[name] = t.ID
		}
	}

	all, err := m.store.ListAll("")
	if err != nil {
		return nil, fmt.Errorf("failed to list configuration: %w", err)
	}

	docs, err := m.readAll(all)
	if err != nil {
		return nil, err
	}

	graph := m.graph
	if graph == nil {
		graph = dependency.BuildFromDocuments(docs)
	}

	c := NewCollection()
	for _, name := range all {
		data, ok := docs[name]
		if !ok {
			continue
		}
		typeID, isTyped := typed[name]
		if !isTyped {
			typeID = SimpleConfig
		}
		shortName := name
		if isTyped {
			t, _ := m.types.Get(typeID)
			shortName = strings.TrimPrefix(name, t.Prefix+".")
		}
		item := NewConfigurationItem(name, data,
			WithType(typeID),
			WithShortName(shortName),
			WithLabel(configLabel(data, shortName)),
			WithDependents(graph.TransitiveDependents(name)...),
			WithSubdirectory(SubdirInstall),
		)
		if m.extensions != nil {
			item.Provider = m.extensions.Provider(name)
		}
		c.Add(item)
	}
	m.logger.Info("Loaded %d configuration items (%d typed)", c.Len(), len(typed))
	return c, nil
}

func (m *Manager) readAll(names []string) (map[string]map[string]interface{}, error) {
	if br, ok := m.store.(BatchReader); ok {
		docs, err := br.ReadMultiple(names)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		return docs, nil
	}
	docs := make(map[string]map[string]interface{}, len(names))
	for _, name := range names {
		data, err := m.store.Read(name)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				m.logger.Warn("Configuration %s listed but not readable, skipping", name)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		docs[name] = data
	}
	return docs, nil
}

func configLabel(data map[string]interface{}, fallback string) string {
	for _, key := range []string{"label", "name"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// ListConfigTypes returns configuration type labels keyed by type id,
// including simple configuration.
func (m *Manager) ListConfigTypes() map[string]string {
	out := map[string]string{SimpleConfig: m.types.Label(SimpleConfig)}
	for _, t := range m.types.List() {
		out[t.ID] = t.Label
	}
	return out
}

// GetFullName returns the configuration name for a short name of type t.
func (m *Manager) GetFullName(t, shortName string) string {
	if t == SimpleConfig || t == "" {
		return shortName
	}
	ct, ok := m.types.Get(t)
	if !ok {
		return shortName
	}
	return ct.Prefix + "." + shortName
}

// Packages returns the package map keyed by machine name.
func (m *Manager) Packages() map[string]*Package {
	return m.packages
}

// SetPackages replaces the package map.
func (m *Manager) SetPackages(p map[string]*Package) {
	if p == nil {
		p = make(map[string]*Package)
	}
	m.packages = p
}

// PackageNames returns the package machine names, sorted.
func (m *Manager) PackageNames() []string {
	names := make([]string, 0, len(m.packages))
	for name := range m.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPackage returns the package keyed by machineName.
func (m *Manager) GetPackage(machineName string) (*Package, bool) {
	p, ok := m.packages[machineName]
	return p, ok
}

// FindPackage looks a package up by machine name or full name.
func (m *Manager) FindPackage(name string) (*Package, bool) {
	if p, ok := m.packages[name]; ok {
		return p, true
	}
	for _, key := range m.PackageNames() {
		if p := m.packages[key]; p.FullName() == name {
			return p, true
		}
	}
	return nil, false
}

// SetPackage stores p under its machine name.
func (m *Manager) SetPackage(p *Package) {
	m.packages[p.MachineName] = p
}

// PackagesPrefixed reports whether SetPackageBundleNames has run.
func (m *Manager) PackagesPrefixed() bool {
	return m.packagesPrefixed
}

// InitPackage creates a package unless one with machineName exists, in which
// case the existing package is returned. An empty name is derived from the
// machine name. A matching feature extension marks the package installed or
// uninstalled and seeds its shipped config.
func (m *Manager) InitPackage(machineName, name, description, packageType string, bundle *Bundle) *Package {
	if p, ok := m.packages[machineName]; ok {
		return p
	}
	p := m.newPackage(machineName, name, description, packageType, bundle, nil)
	m.packages[machineName] = p
	return p
}

// InitPackageFromExtension creates a package for an existing extension. The
// package is keyed by the extension name stripped of its bundle prefix, so
// SetPackageBundleNames restores the extension name.
func (m *Manager) InitPackageFromExtension(ext *extension.Extension) *Package {
	bundle := m.bundle
	if ext.BundleName() != "" && bundle.MachineName != ext.BundleName() {
		bundle = &Bundle{MachineName: ext.BundleName()}
	}
	machineName := bundle.ShortName(ext.Name)
	if p, ok := m.packages[machineName]; ok {
		return p
	}
	p := m.newPackage(machineName, ext.Info.Name, ext.Info.Description, string(ext.Type()), bundle, ext)
	m.packages[machineName] = p
	return p
}

func (m *Manager) newPackage(machineName, name, description, packageType string, bundle *Bundle, ext *extension.Extension) *Package {
	if name == "" {
		name = cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(machineName))
	}
	if packageType == "" {
		packageType = TypeModule
	}
	if bundle == nil {
		bundle = m.bundle
	}
	p := NewPackage(machineName)
	p.Name = name
	p.Description = description
	p.Type = packageType
	p.Core = m.core
	if !bundle.IsDefault() {
		p.Bundle = bundle.MachineName
	}
	p.Directory = p.FullName()

	if ext == nil && m.extensions != nil {
		if candidate, ok := m.extensions.Get(p.FullName()); ok && candidate.IsFeature() {
			ext = candidate
		}
	}
	if ext != nil {
		m.applyExtension(p, ext)
	}
	return p
}

func (m *Manager) applyExtension(p *Package, ext *extension.Extension) {
	if ext.Path != "" {
		p.Directory = ext.Path
	}
	p.Version = ext.Info.Version
	p.Info = ext.Info.Extra
	if len(ext.Info.Themes) > 0 {
		p.Themes = append([]string(nil), ext.Info.Themes...)
	}
	if ext.Feature != nil {
		p.Excluded = append([]string(nil), ext.Feature.Excluded...)
		p.Required = append([]string(nil), ext.Feature.Required.Items...)
		p.RequiredAll = ext.Feature.Required.All
	}
	p.ConfigOrig = m.ListExtensionConfig(ext)
	if ext.Installed {
		p.Status = StatusInstalled
	} else {
		p.Status = StatusUninstalled
	}
}

// ListExtensionConfig returns the config shipped by ext that also exists in
// the active configuration, sorted.
func (m *Manager) ListExtensionConfig(ext *extension.Extension) []string {
	c := m.collectionOrEmpty()
	var out []string
	for _, name := range ext.Config() {
		if c.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// ExistingPackages returns the feature extensions, optionally only the
// installed ones and only those belonging to bundle (nil means any).
func (m *Manager) ExistingPackages(installedOnly bool, bundle *Bundle) []*extension.Extension {
	if m.extensions == nil {
		return nil
	}
	var out []*extension.Extension
	for _, ext := range m.extensions.List() {
		if !ext.IsFeature() {
			continue
		}
		if installedOnly && !ext.Installed {
			continue
		}
		if bundle != nil && !extensionInBundle(ext, bundle) {
			continue
		}
		out = append(out, ext)
	}
	return out
}

func extensionInBundle(ext *extension.Extension, bundle *Bundle) bool {
	if bundle.IsDefault() {
		return ext.BundleName() == "" || ext.BundleName() == DefaultBundleName
	}
	return ext.BundleName() == bundle.MachineName || bundle.InBundle(ext.Name)
}

// FilterPackages returns the packages belonging to bundle, optionally
// dropping those that have nothing to export.
func (m *Manager) FilterPackages(packages map[string]*Package, bundle *Bundle, onlyExported bool) map[string]*Package {
	out := make(map[string]*Package)
	for key, p := range packages {
		if onlyExported && p.Status == StatusNoExport && len(p.config) == 0 {
			continue
		}
		if bundle != nil {
			if bundle.IsDefault() {
				if p.Bundle != "" && p.Bundle != DefaultBundleName {
					continue
				}
			} else if p.Bundle != bundle.MachineName && !bundle.InBundle(p.MachineName) {
				continue
			}
		}
		out[key] = p
	}
	return out
}

// configDependency returns the module dependencies an item brings into a
// package: the provider of its entity type when that module is installed and,
// for install-directory items only, the modules its data declares. Simple
// configuration has no entity type provider.
func (m *Manager) configDependency(item *ConfigurationItem) []string {
	var deps []string
	if item.Type != SimpleConfig {
		if t, ok := m.types.Get(item.Type); ok && m.providerCounts(t.Provider) {
			deps = append(deps, t.Provider)
		}
	}
	if item.Subdirectory == SubdirInstall {
		deps = append(deps, item.ModuleDependencies()...)
	}
	return deps
}

func (m *Manager) providerCounts(provider string) bool {
	if provider == "" || provider == "core" {
		return false
	}
	if m.extensions == nil {
		return true
	}
	return m.extensions.IsInstalled(provider)
}

// AssignConfigPackage assigns items to the package keyed by packageName.
//
// An item is claimed when force is set, or when it is unassigned, assignable
// and not excluded from this package. Items already in the package are
// skipped. Unknown item names are ignored. With force, the item is also
// removed from the package that previously held it.
func (m *Manager) AssignConfigPackage(packageName string, itemNames []string, force bool) error {
	p, ok := m.packages[packageName]
	if !ok {
		return &PackageNotFoundError{Package: packageName}
	}
	c := m.collectionOrEmpty()
	isProfilePackage := m.bundle.IsProfilePackage(packageName)

	for _, name := range itemNames {
		item, ok := c.Get(name)
		if !ok {
			continue
		}
		if p.HasConfig(name) {
			continue
		}
		alreadyAssigned := item.Package != ""
		assignable := (!item.ProviderExcluded || isProfilePackage) && !item.Excluded
		assignable = assignable || (item.Provider != "" && item.Provider == p.FullName())
		excluded := item.IsExcludedFrom(packageName, p.FullName())

		if !force && (alreadyAssigned || !assignable || excluded) {
			continue
		}

		if alreadyAssigned && item.Package != packageName {
			if previous, ok := m.packages[item.Package]; ok {
				previous.RemoveConfig(name)
			}
			m.logger.Debug("Reassigning %s from %s to %s", name, item.Package, packageName)
		}
		p.AppendConfig(name)
		item.Package = packageName
		if deps := m.configDependency(item); len(deps) > 0 {
			p.AppendDependency(deps...)
		}
	}
	return nil
}

// safeAssign wraps AssignConfigPackage for batch loops: a failure is logged
// as an *AssignmentError and processing continues.
func (m *Manager) safeAssign(packageName string, itemNames []string, force bool) {
	if err := m.AssignConfigPackage(packageName, itemNames, force); err != nil {
		aerr := &AssignmentError{Item: strings.Join(itemNames, ", "), Package: packageName, Err: err}
		m.logger.Error(aerr, "Failed to assign configuration")
	}
}

// AssignConfigPackageSafe is the batch-loop form of AssignConfigPackage used
// by assignment methods: failures are logged, never returned.
func (m *Manager) AssignConfigPackageSafe(packageName string, itemNames []string, force bool) {
	m.safeAssign(packageName, itemNames, force)
}

type patternEntry struct {
	target string
	re     *regexp.Regexp
}

// AssignConfigByPattern assigns unassigned items whose short name contains a
// pattern delimited by "_", "-" or "." to the mapped package. Patterns are
// regular expression fragments; callers quote literal names themselves. A
// fragment that does not compile is logged and skipped.
//
// Items are visited in reverse name order and, for each item, patterns are
// tried in reverse order too, so "event_registration" claims before "event".
func (m *Manager) AssignConfigByPattern(patterns map[string]string) {
	if len(patterns) == 0 {
		return
	}
	keys := make([]string, 0, len(patterns))
	for k := range patterns {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	entries := make([]patternEntry, 0, len(keys))
	for _, k := range keys {
		re, err := regexp.Compile(`[_\-.]` + k + `[_\-.]`)
		if err != nil {
			m.logger.Error(err, "Invalid pattern %q", k)
			continue
		}
		entries = append(entries, patternEntry{target: patterns[k], re: re})
	}

	c := m.collectionOrEmpty()

	// Decide first, then apply.
	type claim struct{ item, pkg string }
	var claims []claim
	for _, name := range c.NamesDesc() {
		item, _ := c.Get(name)
		if item.Package != "" || skipPattern(name) {
			continue
		}
		subject := "." + item.ShortName + "."
		for _, e := range entries {
			if e.re.MatchString(subject) {
				claims = append(claims, claim{item: name, pkg: e.target})
				break
			}
		}
	}
	for _, cl := range claims {
		m.safeAssign(cl.pkg, []string{cl.item}, false)
	}
}

func skipPattern(itemName string) bool {
	for _, re := range patternSkips {
		if re.MatchString(itemName) {
			return true
		}
	}
	return false
}

// AssignConfigDependents assigns the dependents of already assigned items to
// the same package. When targetPackage is given, dependents are forced into
// it regardless of their current assignment. Empty itemNames means every item.
func (m *Manager) AssignConfigDependents(itemNames []string, targetPackage string) {
	c := m.collectionOrEmpty()
	if len(itemNames) == 0 {
		itemNames = c.Names()
	}
	force := targetPackage != ""

	type claim struct{ item, pkg string }
	var claims []claim
	for _, name := range itemNames {
		item, ok := c.Get(name)
		if !ok || item.Package == "" {
			continue
		}
		for _, dependent := range item.Dependents {
			dep, ok := c.Get(dependent)
			if !ok {
				continue
			}
			if !force && dep.Package != "" {
				continue
			}
			pkg := item.Package
			if force {
				pkg = targetPackage
			}
			claims = append(claims, claim{item: dependent, pkg: pkg})
		}
	}
	for _, cl := range claims {
		m.safeAssign(cl.pkg, []string{cl.item}, force)
	}
}

// SetPackageBundleNames renames every non-profile package to its
// bundle-qualified name, re-keys the package map and updates item
// assignments. It runs once per session; later calls return the map as is.
func (m *Manager) SetPackageBundleNames(bundle *Bundle) map[string]*Package {
	if m.packagesPrefixed {
		m.logger.Debug("Package names already prefixed, skipping")
		return m.packages
	}
	m.packagesPrefixed = true
	if bundle.IsDefault() {
		return m.packages
	}

	renamed := make(map[string]string)
	rekeyed := make(map[string]*Package, len(m.packages))
	for _, oldName := range m.PackageNames() {
		p := m.packages[oldName]
		newName := oldName
		if p.Type != TypeProfile && !bundle.IsProfilePackage(oldName) {
			newName = bundle.FullName(oldName)
			p.Bundle = bundle.MachineName
		}
		if newName != oldName {
			p.MachineName = newName
			if p.Directory == oldName {
				p.Directory = newName
			}
			renamed[oldName] = newName
			p.RemoveDependency(newName)
		}
		rekeyed[newName] = p
	}
	m.packages = rekeyed

	if m.collection != nil {
		for _, item := range m.collection.Items() {
			if newName, ok := renamed[item.Package]; ok {
				item.Package = newName
			}
		}
	}
	m.logger.Debug("Prefixed %d packages with bundle %s", len(renamed), bundle.MachineName)
	return m.packages
}

// AssignInterPackageDependencies adds package dependencies implied by the
// config dependencies of each member item: on the package owning the
// dependency, or on the extension providing it when no package does. The
// install profile and the package itself are never added.
func (m *Manager) AssignInterPackageDependencies(bundle *Bundle, packages map[string]*Package) error {
	if !m.packagesPrefixed {
		return ErrNotPrefixed
	}
	c := m.collectionOrEmpty()
	profile := ""
	if m.extensions != nil {
		profile = m.extensions.InstallProfile()
	}

	keys := make([]string, 0, len(packages))
	for k := range packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := packages[key]
		self := bundle.FullName(p.MachineName)
		var deps []string
		for _, itemName := range p.config {
			item, ok := c.Get(itemName)
			if !ok {
				continue
			}
			for _, depName := range item.ConfigDependencies() {
				depItem, ok := c.Get(depName)
				if !ok {
					continue
				}
				if depItem.Package != "" {
					if owner, ok := packages[depItem.Package]; ok {
						deps = append(deps, owner.FullName())
					}
					continue
				}
				if provider := depItem.Provider; provider != "" && provider != self && provider != profile {
					deps = append(deps, provider)
				}
			}
		}
		p.AppendDependency(deps...)
		p.RemoveDependency(self)
		p.RemoveDependency(p.FullName())
	}
	return nil
}

// DependencyOrder returns the item names ordered so that dependencies come
// before the items that declare them.
func (m *Manager) DependencyOrder() []string {
	c := m.collectionOrEmpty()
	docs := make(map[string]map[string]interface{}, c.Len())
	for _, item := range c.Items() {
		docs[item.Name] = item.Data
	}
	order := dependency.BuildFromDocuments(docs).TopologicalOrder()
	out := make([]string, 0, len(order))
	for _, id := range order {
		out = append(out, string(id))
	}
	return out
}

// Cleanup removes packages that were never exported and neither claim nor
// ship any configuration.
func (m *Manager) Cleanup() []string {
	var removed []string
	for _, name := range m.PackageNames() {
		p := m.packages[name]
		if p.Status == StatusNoExport && p.IsEmpty() {
			delete(m.packages, name)
			removed = append(removed, name)
		}
	}
	return removed
}

// Verify checks the guarantees given to generation: every member resolves to
// an item that names the package as owner, and dependency lists are sorted,
// unique and free of self references.
func (m *Manager) Verify(packages map[string]*Package) error {
	c := m.collectionOrEmpty()
	var problems []string
	for _, key := range sortedKeys(packages) {
		p := packages[key]
		for _, name := range p.config {
			item, ok := c.Get(name)
			if !ok {
				problems = append(problems, fmt.Sprintf("%s: member %s does not exist", key, name))
				continue
			}
			if item.Package != key {
				problems = append(problems, fmt.Sprintf("%s: member %s is owned by %q", key, name, item.Package))
			}
		}
		deps := p.dependencies
		for i, d := range deps {
			if d == p.FullName() || d == p.MachineName {
				problems = append(problems, fmt.Sprintf("%s: depends on itself", key))
			}
			if i > 0 && deps[i-1] >= d {
				problems = append(problems, fmt.Sprintf("%s: dependencies not sorted and unique", key))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("package set is inconsistent: %s", strings.Join(problems, "; "))
	}
	return nil
}

func sortedKeys(packages map[string]*Package) []string {
	keys := make([]string, 0, len(packages))
	for k := range packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
