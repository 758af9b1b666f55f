package services

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// SourceLanguage is the language every document is simplified into.
const SourceLanguage = "en"

//go:embed languages.yaml
var languagesYAML []byte

// Language is one entry of the target-language picker.
type Language struct {
	Code   string `yaml:"code" json:"code"`
	Name   string `yaml:"name" json:"name"`
	Group  string `yaml:"group" json:"group"`
	Sample string `yaml:"sample" json:"-"`
	RTL    bool   `yaml:"-" json:"rtl"`
}

type catalogFile struct {
	Languages     []Language `yaml:"languages"`
	DefaultSample string     `yaml:"default_sample"`
}

// Catalog resolves language codes to display names, text direction and the
// canned samples used when no model is available.
type Catalog struct {
	languages     []Language
	byCode        map[string]int
	defaultSample string
}

// rtlScripts are the scripts written right-to-left.
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Thaa": true, "Syrc": true,
	"Nkoo": true, "Adlm": true, "Mand": true, "Samr": true,
}

// LoadCatalog parses a YAML language catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse language catalog: %w", err)
	}
	if !strings.Contains(file.DefaultSample, "{name}") {
		return nil, fmt.Errorf("default_sample must contain a {name} placeholder")
	}

	c := &Catalog{
		languages:     make([]Language, 0, len(file.Languages)),
		byCode:        make(map[string]int, len(file.Languages)),
		defaultSample: file.DefaultSample,
	}
	for _, lang := range file.Languages {
		lang.Code = NormalizeCode(lang.Code)
		if lang.Code == "" || lang.Name == "" {
			return nil, fmt.Errorf("language entry %q is missing a code or name", lang.Code)
		}
		if _, dup := c.byCode[lang.Code]; dup {
			return nil, fmt.Errorf("duplicate language code %q", lang.Code)
		}
		lang.RTL = isRTL(lang.Code)
		c.byCode[lang.Code] = len(c.languages)
		c.languages = append(c.languages, lang)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(languagesYAML)
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog { return defaultCatalog() }

// NormalizeCode lower-cases a language code and uses hyphens as separators,
// so "pt_BR" and "pt-br" resolve to the same entry.
func NormalizeCode(code string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-")
}

// Lookup returns the catalog entry for code.
func (c *Catalog) Lookup(code string) (Language, bool) {
	i, ok := c.byCode[NormalizeCode(code)]
	if !ok {
		return Language{}, false
	}
	return c.languages[i], true
}

// Name returns the display name for code. Codes outside the catalog fall
// back to their English CLDR name, then to the code itself.
func (c *Catalog) Name(code string) string {
	if lang, ok := c.Lookup(code); ok {
		return lang.Name
	}
	code = NormalizeCode(code)
	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	return code
}

// IsRTL reports whether code is written right-to-left.
func (c *Catalog) IsRTL(code string) bool {
	if lang, ok := c.Lookup(code); ok {
		return lang.RTL
	}
	return isRTL(NormalizeCode(code))
}

// Sample returns the canned illustrative output for code, or the generic
// sample naming the language when the catalog has none.
func (c *Catalog) Sample(code string) string {
	if lang, ok := c.Lookup(code); ok && lang.Sample != "" {
		return lang.Sample
	}
	return strings.ReplaceAll(c.defaultSample, "{name}", c.Name(code))
}

// HasSample reports whether code has its own canned sample.
func (c *Catalog) HasSample(code string) bool {
	lang, ok := c.Lookup(code)
	return ok && lang.Sample != ""
}

// Languages returns the catalog in file order.
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}

// Groups returns the distinct group names, sorted.
func (c *Catalog) Groups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, lang := range c.languages {
		if !seen[lang.Group] {
			seen[lang.Group] = true
			groups = append(groups, lang.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

func isRTL(code string) bool {
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}
	script, _ := tag.Script()
	return rtlScripts[script.String()]
}
