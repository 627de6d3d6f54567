package siteconfig

import (
	"git.home.luguber.info/inful/sitecfg/internal/foundation/normalization"
)

// Engine names a template language the external build tool can render.
type Engine string

const (
	EngineLiquid     Engine = "liquid"
	EngineNunjucks   Engine = "njk"
	EngineMarkdown   Engine = "md"
	EngineHTML       Engine = "html"
	EngineJavaScript Engine = "11ty.js"
	EngineHandlebars Engine = "hbs"
	EngineMustache   Engine = "mustache"
	EngineEJS        Engine = "ejs"
	EngineHaml       Engine = "haml"
	EnginePug        Engine = "pug"
)

var engineNormalizer = normalization.NewNormalizer(map[string]Engine{
	"liquid":     EngineLiquid,
	"njk":        EngineNunjucks,
	"nunjucks":   EngineNunjucks,
	"md":         EngineMarkdown,
	"markdown":   EngineMarkdown,
	"html":       EngineHTML,
	"11ty.js":    EngineJavaScript,
	"js":         EngineJavaScript,
	"hbs":        EngineHandlebars,
	"handlebars": EngineHandlebars,
	"mustache":   EngineMustache,
	"ejs":        EngineEJS,
	"haml":       EngineHaml,
	"pug":        EnginePug,
}, "")

// NormalizeEngine maps a loosely written engine name onto its canonical form.
// It returns "" when the name is not recognized.
func NormalizeEngine(raw string) Engine {
	return engineNormalizer.Normalize(raw)
}

// SupportedEngines lists the canonical engine names, sorted.
func SupportedEngines() []Engine {
	return []Engine{
		EngineJavaScript,
		EngineEJS,
		EngineHaml,
		EngineHandlebars,
		EngineHTML,
		EngineLiquid,
		EngineMarkdown,
		EngineMustache,
		EngineNunjucks,
		EnginePug,
	}
}

// IsSupported reports whether e is a canonical engine name.
func (e Engine) IsSupported() bool {
	return e != "" && engineNormalizer.ValidateEnum(e)
}

func (e Engine) String() string { return string(e) }

// NormalizeTemplateFormat maps a template format onto its canonical extension.
// Leading dots are accepted (".md" -> "md"). Unknown formats yield "".
func NormalizeTemplateFormat(raw string) string {
	if len(raw) > 0 && raw[0] == '.' {
		raw = raw[1:]
	}
	return string(engineNormalizer.Normalize(raw))
}
