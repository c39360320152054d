package assigner

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"featurepack/internal/features"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDescriptionTemplate renders the description of packages created by
// the base method.
const DefaultDescriptionTemplate = `Provides {{ .Label | lower }} {{ .TypeLabel | lower }} and related configuration.`

type baseMethod struct{}

func (m *baseMethod) ID() string { return features.MethodBase }

// descriptionData is the template input of DescriptionTemplate.
type descriptionData struct {
	Label     string
	ShortName string
	Type      string
	TypeLabel string
}

// AssignPackages creates one package per item of the configured base types
// (content types, comment types and the like) and one per configured content
// entity type.
func (m *baseMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	settings := a.Settings(features.MethodBase)

	source := settings.DescriptionTemplate
	if source == "" {
		source = DefaultDescriptionTemplate
	}
	tpl, err := template.New("description").Funcs(sprig.TxtFuncMap()).Parse(source)
	if err != nil {
		return fmt.Errorf("failed to parse description template: %w", err)
	}

	types := a.manager.Types()
	for _, item := range itemsOfTypes(c, settings.Types.Config) {
		description, _ := item.Data["description"].(string)
		if description == "" {
			description, err = renderDescription(tpl, descriptionData{
				Label:     item.Label,
				ShortName: item.ShortName,
				Type:      item.Type,
				TypeLabel: types.Label(item.Type),
			})
			if err != nil {
				return err
			}
		}
		a.manager.InitPackage(item.ShortName, item.Label, description, features.TypeModule, a.bundle)
		a.manager.AssignConfigPackageSafe(item.ShortName, []string{item.Name}, force)
	}

	for _, entityType := range settings.Types.Content {
		label := cases.Title(language.English).String(strings.ReplaceAll(entityType, "_", " "))
		description, err := renderDescription(tpl, descriptionData{
			Label:     label,
			ShortName: entityType,
			Type:      entityType,
			TypeLabel: "entity type",
		})
		if err != nil {
			return err
		}
		a.manager.InitPackage(entityType, label, description, features.TypeModule, a.bundle)
	}
	return nil
}

func renderDescription(tpl *template.Template, data descriptionData) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render description for %s: %w", data.ShortName, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
