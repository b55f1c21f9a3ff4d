// Package render expands template text by literal token replacement.
//
// Tokens are fixed spellings in braces. A token the active variant does not
// define is left in the output unchanged.
package render

import (
	"regexp"
	"strings"

	"github.com/example/codegen/internal/core/naming"
	"github.com/example/codegen/internal/models"
)

// Token spellings recognised in templates.
const (
	TokenRootNamespace           = "{rootnamespace}"
	TokenNamespace               = "{namespace}"
	TokenSelectNamespace         = "{selectns}"
	TokenItemName                = "{itemName}"
	TokenItemNameUpper           = "{itemNameUpper}"
	TokenItemNameLower           = "{itemNameLower}"
	TokenNameOfPlural            = "{nameofPlural}"
	TokenDtoFieldDefinition      = "{dtoFieldDefinition}"
	TokenParameterDefinition     = "{parameterDefinition}"
	TokenFieldAssignment         = "{fieldAssignmentDefinition}"
	TokenTemplateFieldDefinition = "{templateFieldDefinition}"
	TokenImportFuncExpression    = "{importFuncExpression}"
	TokenExportFuncExpression    = "{exportFuncExpression}"
	TokenMudTdHeaderDefinition   = "{mudTdHeaderDefinition}"
	TokenMudFormFieldDefinition  = "{mudFormFieldDefinition}"
	TokenDomainRootNs            = "{domainRootNs}"
	TokenInfrastructureRootNs    = "{infrastructureRootNs}"
	TokenApiRootNs               = "{apiRootNs}"
)

// DefaultLineEnding is applied when Options.LineEnding is empty.
const DefaultLineEnding = "\r\n"

// CursorMarker marks where an editor should place the caret.
const CursorMarker = "$"

// Names are the computed name values of one generated file.
type Names struct {
	ItemName             string
	RootNamespace        string
	Namespace            string
	SelectNamespace      string
	DomainRootNs         string
	InfrastructureRootNs string
	ApiRootNs            string
}

// Options select the variant-specific behaviour of Render.
type Options struct {
	Variant    models.Variant
	PrimaryKey string
	LineEnding string
}

// Render replaces every token occurrence in text and normalises line endings.
func Render(text string, class models.ClassDescriptor, names Names, opts Options) string {
	if text == "" {
		return text
	}

	pairs := []string{
		TokenRootNamespace, names.RootNamespace,
		TokenNamespace, names.Namespace,
		TokenSelectNamespace, names.SelectNamespace,
		TokenItemName, names.ItemName,
		TokenItemNameUpper, strings.ToUpper(names.ItemName),
		TokenItemNameLower, strings.ToLower(names.ItemName),
		TokenNameOfPlural, naming.Pluralize(names.ItemName),
		TokenDtoFieldDefinition, FieldDeclarations(class, opts.PrimaryKey),
		TokenFieldAssignment, FieldAssignments(class),
		TokenTemplateFieldDefinition, TemplateFields(class, opts.PrimaryKey),
		TokenDomainRootNs, names.DomainRootNs,
		TokenInfrastructureRootNs, names.InfrastructureRootNs,
		TokenApiRootNs, names.ApiRootNs,
	}

	switch opts.Variant {
	case models.VariantCQRS:
		pairs = append(pairs,
			TokenImportFuncExpression, ImportMappings(class),
			TokenExportFuncExpression, ExportMappings(class),
			TokenMudTdHeaderDefinition, MudTdHeaders(class, opts.PrimaryKey),
			TokenMudFormFieldDefinition, MudFormFields(class, opts.PrimaryKey),
		)
	default:
		pairs = append(pairs, TokenParameterDefinition, ParameterBindings(class))
	}

	out := strings.NewReplacer(pairs...).Replace(text)
	return NormalizeLineEndings(out, opts.LineEnding)
}

var lineBreak = regexp.MustCompile(`\r\n|\n\r|\n|\r`)

// NormalizeLineEndings rewrites every line break to eol, DefaultLineEnding
// when eol is empty.
func NormalizeLineEndings(text, eol string) string {
	if text == "" {
		return text
	}
	if eol == "" {
		eol = DefaultLineEnding
	}
	return lineBreak.ReplaceAllLiteralString(text, eol)
}

// CursorOffset returns the byte offset of the first cursor marker, or -1.
func CursorOffset(text string) int {
	return strings.Index(text, CursorMarker)
}
