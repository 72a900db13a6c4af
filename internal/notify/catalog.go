package notify

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/tplgen/pkg/core"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// Messages holds the display strings for one locale.
type Messages struct {
	EmptyTemplateTitle      string
	EmptyTemplateDesc       string
	NoVariablesTitle        string
	NoVariablesDesc         string
	MissingValuesTitle      string
	MissingValuesDesc       string // %s receives the comma-joined names
	InconsistentCountsTitle string
	InconsistentCountsDesc  string
	ContinueLabel           string
	CopiedTitle             string
	CopiedDesc              string
}

var english = Messages{
	EmptyTemplateTitle:      "Empty template",
	EmptyTemplateDesc:       "Please enter a template using the {{variable}} format.",
	NoVariablesTitle:        "No variables found",
	NoVariablesDesc:         "Please add at least one variable to your template using the {{variable}} format.",
	MissingValuesTitle:      "Variables without values",
	MissingValuesDesc:       "Please provide values for: %s",
	InconsistentCountsTitle: "Inconsistent value counts",
	InconsistentCountsDesc:  "All variables should have the same number of values.",
	ContinueLabel:           "Continue anyway",
	CopiedTitle:             "Copied to clipboard",
	CopiedDesc:              "The generated output has been copied to your clipboard.",
}

var portuguese = Messages{
	EmptyTemplateTitle:      "Texto vazio",
	EmptyTemplateDesc:       "Por favor digite um texto com o formato {{variavel}}.",
	NoVariablesTitle:        "Nenhuma variavel encontrada",
	NoVariablesDesc:         "Por favor insira ao menos 1 variavel no seu texto usando o formato {{variavel}}",
	MissingValuesTitle:      "Variaveis sem valores",
	MissingValuesDesc:       "Por favor informe valores para: %s",
	InconsistentCountsTitle: "Quantidade de valores inconsistente",
	InconsistentCountsDesc:  "Todas as variaveis devem ter a mesma quantidade de valores.",
	ContinueLabel:           "Continuar mesmo assim",
	CopiedTitle:             "Copiado",
	CopiedDesc:              "O resultado gerado foi copiado para a area de transferencia.",
}

var (
	supported = []language.Tag{language.English, language.Portuguese}
	matcher   = language.NewMatcher(supported)
	catalogs  = map[language.Tag]Messages{
		language.English:    english,
		language.Portuguese: portuguese,
	}
)

// Catalog builds notifications in one locale.
type Catalog struct {
	tag language.Tag
	msg Messages
}

// NewCatalog returns the catalog closest to locale (a BCP 47 tag such as
// "pt-BR"). Unknown or empty locales fall back to English.
func NewCatalog(locale string) *Catalog {
	tag, _ := MatchLocale(locale)
	return &Catalog{tag: tag, msg: catalogs[tag]}
}

// MatchLocale returns the supported locale closest to locale. It reports
// false, with English, when locale is malformed or matches no catalog.
func MatchLocale(locale string) (language.Tag, bool) {
	t, err := language.Parse(locale)
	if err != nil {
		return language.English, false
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return language.English, false
	}
	return supported[idx], true
}

// Locale returns the matched language tag.
func (c *Catalog) Locale() language.Tag {
	return c.tag
}

// Messages returns the catalog's display strings.
func (c *Catalog) Messages() Messages {
	return c.msg
}

// SupportedLocales lists the locales with a catalog.
func SupportedLocales() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}

// ForError builds the notification for a generation error. When err is
// recoverable and cont is non-nil, the notification carries a continue action
// that runs cont. It returns false for errors outside the generation taxonomy.
func (c *Catalog) ForError(err error, cont func() error) (Notification, bool) {
	kind, ok := expand.KindOf(err)
	if !ok {
		return Notification{}, false
	}

	switch kind {
	case expand.KindEmptyTemplate:
		return Notification{
			Kind:        KindEmptyTemplate,
			Title:       c.msg.EmptyTemplateTitle,
			Description: c.msg.EmptyTemplateDesc,
			Severity:    core.SeverityError,
		}, true
	case expand.KindNoVariablesFound:
		return Notification{
			Kind:        KindNoVariables,
			Title:       c.msg.NoVariablesTitle,
			Description: c.msg.NoVariablesDesc,
			Severity:    core.SeverityError,
		}, true
	case expand.KindMissingVariableValues:
		var names []string
		var mve *expand.MissingValuesError
		if errors.As(err, &mve) {
			names = mve.Names
		}
		return Notification{
			Kind:        KindMissingValues,
			Title:       c.msg.MissingValuesTitle,
			Description: fmt.Sprintf(c.msg.MissingValuesDesc, strings.Join(names, ", ")),
			Severity:    core.SeverityError,
		}, true
	case expand.KindInconsistentValueCounts:
		n := Notification{
			Kind:        KindInconsistentCounts,
			Title:       c.msg.InconsistentCountsTitle,
			Description: c.msg.InconsistentCountsDesc,
			Severity:    core.SeverityWarning,
		}
		if cont != nil && expand.Recoverable(err) {
			n.Action = &Action{Label: c.msg.ContinueLabel, Run: cont}
		}
		return n, true
	}
	return Notification{}, false
}

// Copied builds the clipboard confirmation.
func (c *Catalog) Copied() Notification {
	return Notification{
		Kind:        KindCopied,
		Title:       c.msg.CopiedTitle,
		Description: c.msg.CopiedDesc,
		Severity:    core.SeveritySuccess,
	}
}
