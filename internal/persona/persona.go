// Package persona owns the static catalog of tutor identities.
//
// A Persona binds a (language, dialect) pair to a named tutor with a voice
// reference and the free-text material the feedback generator folds into its
// prompt. The catalog is loaded once at startup and never mutated, so the
// Registry needs no locking.
//
// Resolution is total: an unknown language falls back to the default
// language, and an unknown dialect falls back to the language's first
// declared dialect. Downstream stages rely on always receiving a valid
// Persona.
package persona

import "fmt"

// Persona is a single tutor identity bound to one dialect of a language.
type Persona struct {
	// Key is the dialect key ("roman", "castilian", …).
	Key string `yaml:"key"`

	// Name is the tutor's display name ("Marco").
	Name string `yaml:"name"`

	// Region is the tutor's home region shown to the learner.
	Region string `yaml:"region"`

	// VoiceID is the synthesis provider's voice reference.
	VoiceID string `yaml:"voice_id"`

	// Personality is the free-text persona description injected into the
	// generation prompt.
	Personality string `yaml:"personality"`

	// Greeting is the tutor's native-language opening line.
	Greeting string `yaml:"greeting"`

	// SpeechQuirks hints at the tutor's verbal tics for the prompt.
	SpeechQuirks string `yaml:"speech_quirks"`
}

// Language groups the dialect personas of one supported language.
// Dialects are ordered: the first entry is the default.
type Language struct {
	// Key is the catalog key ("italian", "spanish", …).
	Key string `yaml:"key"`

	// Name is the English display name ("Italian").
	Name string `yaml:"name"`

	// Flag is the emoji flag shown in the catalog endpoints.
	Flag string `yaml:"flag"`

	// LocaleCode is the BCP-47 code passed to speech recognition ("it-IT").
	LocaleCode string `yaml:"locale_code"`

	// TranslateCode is the ISO-639-1 code passed to translation ("it").
	TranslateCode string `yaml:"translate_code"`

	// Dialects lists the language's personas in declaration order.
	Dialects []Persona `yaml:"dialects"`
}

// DefaultDialect returns the language's first declared dialect.
func (l Language) DefaultDialect() Persona {
	return l.Dialects[0]
}

// Dialect returns the dialect persona for key, or (zero, false).
func (l Language) Dialect(key string) (Persona, bool) {
	for _, d := range l.Dialects {
		if d.Key == key {
			return d, true
		}
	}
	return Persona{}, false
}

// Registry resolves (language, dialect) pairs to personas. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	languages []Language
	index     map[string]int
	def       string
}

// NewRegistry builds a Registry over the given languages. The first language
// is the fallback when an unknown language key is requested. Every language
// must declare at least one dialect.
func NewRegistry(languages []Language) (*Registry, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("persona: catalog must declare at least one language")
	}
	index := make(map[string]int, len(languages))
	for i, l := range languages {
		if l.Key == "" {
			return nil, fmt.Errorf("persona: languages[%d].key is required", i)
		}
		if len(l.Dialects) == 0 {
			return nil, fmt.Errorf("persona: language %q declares no dialects", l.Key)
		}
		if _, ok := index[l.Key]; ok {
			return nil, fmt.Errorf("persona: duplicate language %q", l.Key)
		}
		index[l.Key] = i
	}
	return &Registry{languages: languages, index: index, def: languages[0].Key}, nil
}

// NewBuiltinRegistry builds a Registry over the compiled-in catalog.
func NewBuiltinRegistry() *Registry {
	r, err := NewRegistry(builtinCatalog())
	if err != nil {
		// The builtin catalog is a compile-time constant; a failure here is
		// a programming error.
		panic("persona: builtin catalog invalid: " + err.Error())
	}
	return r
}

// Resolve returns the language and persona for the given keys. It never
// fails: unknown languages resolve to the default language, and unknown or
// empty dialects resolve to the language's first dialect.
func (r *Registry) Resolve(languageKey, dialectKey string) (Language, Persona) {
	lang := r.languageOrDefault(languageKey)
	if d, ok := lang.Dialect(dialectKey); ok {
		return lang, d
	}
	return lang, lang.DefaultDialect()
}

// Language returns the language for key, or (zero, false) when unknown.
// Unlike Resolve this does not fall back; the catalog endpoints use it to
// report 404 for unsupported languages.
func (r *Registry) Language(key string) (Language, bool) {
	i, ok := r.index[key]
	if !ok {
		return Language{}, false
	}
	return r.languages[i], true
}

// Languages returns all languages in declaration order. Callers must not
// mutate the returned slice.
func (r *Registry) Languages() []Language {
	return r.languages
}

// DefaultLanguage returns the fallback language.
func (r *Registry) DefaultLanguage() Language {
	return r.languages[r.index[r.def]]
}

// languageOrDefault is the fallible lookup behind Resolve.
func (r *Registry) languageOrDefault(key string) Language {
	if i, ok := r.index[key]; ok {
		return r.languages[i]
	}
	return r.DefaultLanguage()
}
