package assigner

import "strings"

// Site-wide settings that never belong in a feature.
var excludeCurated = []string{
	"core.extension",
	"field.settings",
	"field_ui.settings",
	"filter.settings",
	"forum.settings",
	"image.settings",
	"node.settings",
	"system.authorize",
	"system.date",
	"system.file",
	"system.diff",
	"system.logging",
	"system.maintenance",
	"system.performance",
	"system.site",
	"update.settings",
}

var excludeCuratedPrefixes = []string{
	"language.content_settings.",
	"language.entity.",
	"locale.",
}

// Settings an install profile customarily ships.
var profileCurated = []string{
	"automated_cron.settings",
	"system.cron",
	"system.theme",
	"user.settings",
}

var profileCuratedPrefixes = []string{
	"block.block.",
}

func matchesCurated(name string, names, prefixes []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
