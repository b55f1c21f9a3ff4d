package render

import (
	"fmt"
	"strings"

	"github.com/example/codegen/internal/core/naming"
	"github.com/example/codegen/internal/models"
)

// typeStrategy renders the declared type of a non-key property.
type typeStrategy func(p models.PropertyDescriptor) string

// declaredTypes is the per-category formatting table for field declarations.
var declaredTypes = map[models.TypeCategory]typeStrategy{
	models.CategoryText: func(p models.PropertyDescriptor) string {
		if p.Type.IsArray {
			return "HashSet<string>?"
		}
		return "string?"
	},
	models.CategoryDateTime: func(p models.PropertyDescriptor) string {
		if p.Type.Nullable() {
			return "DateTime?"
		}
		return "DateTime"
	},
	models.CategoryInteger:    asWritten,
	models.CategoryDecimal:    asWritten,
	models.CategoryDouble:     asWritten,
	models.CategoryDictionary: asWritten,
}

func asWritten(p models.PropertyDescriptor) string {
	return p.Type.CodeName
}

func nullableIfMarked(p models.PropertyDescriptor) string {
	if p.Type.Nullable() || p.Type.IsOptional {
		return p.Type.BaseName() + "?"
	}
	return p.Type.BaseName()
}

// FieldDeclarations emits one public auto-property per known property.
func FieldDeclarations(class models.ClassDescriptor, primaryKey string) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		switch {
		case p.Name == primaryKey:
			fmt.Fprintf(&b, "    public %s %s { get; set; }\n", p.Type.BaseName(), p.Name)
		case p.Type.Category == models.CategoryText && !p.Type.IsArray && strings.EqualFold(p.Name, "Name"):
			fmt.Fprintf(&b, "    public string %s { get; set; } = string.Empty;\n", p.Name)
		default:
			strategy, ok := declaredTypes[p.Type.Category]
			if !ok {
				strategy = nullableIfMarked
			}
			fmt.Fprintf(&b, "    public %s %s { get; set; }\n", strategy(p), p.Name)
		}
	}
	return b.String()
}

// parameterKinds maps a category to its bind-parameter method stem.
var parameterKinds = map[models.TypeCategory]string{
	models.CategoryText:     "Varchar2",
	models.CategoryDateTime: "DateTime",
	models.CategoryBoolean:  "BoolChar",
	models.CategoryInteger:  "Int",
	models.CategoryLong:     "Long",
	models.CategoryDecimal:  "Decimal",
	models.CategoryDouble:   "Decimal",
}

const parameterIndent = "                         "

// ParameterBindings emits one bind-parameter call per known property. Types
// without a parameter kind are bound as ints through a cast.
func ParameterBindings(class models.ClassDescriptor) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		param := "P" + naming.ParameterName(p.Name)
		if kind, ok := parameterKinds[p.Type.Category]; ok {
			fmt.Fprintf(&b, "\n%s.Add%sParameter(\"%s\", entity.%s)", parameterIndent, kind, param, p.Name)
			continue
		}
		fmt.Fprintf(&b, "\n%s.AddIntParameter(\"%s\", (int)entity.%s)", parameterIndent, param, p.Name)
	}
	return b.String()
}

// FieldAssignments emits "<Name> = dto.<Name>," for every known property,
// the primary key included.
func FieldAssignments(class models.ClassDescriptor) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		fmt.Fprintf(&b, "        %s = dto.%s,\n", p.Name, p.Name)
	}
	return b.String()
}

// TemplateFields emits a localized member-description lookup per non-key
// known property.
func TemplateFields(class models.ClassDescriptor, primaryKey string) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		if p.Name == primaryKey {
			continue
		}
		fmt.Fprintf(&b, "_localizer[_dto.GetMemberDescription(x=>x.%s)],\n", p.Name)
	}
	return b.String()
}

func localizedKey(name string) string {
	return fmt.Sprintf("_localizer[_dto.GetMemberDescription(x=>x.%s)]", name)
}

// ImportMappings emits the column-to-property readers used by spreadsheet
// import. Booleans are parsed, everything else is read as text.
func ImportMappings(class models.ClassDescriptor) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		key := localizedKey(p.Name)
		if p.Type.Category == models.CategoryBoolean {
			fmt.Fprintf(&b, "{ %s, (row, item) => item.%s = Convert.ToBoolean(row[%s]) },\n", key, p.Name, key)
			continue
		}
		fmt.Fprintf(&b, "{ %s, (row, item) => item.%s = row[%s].ToString() },\n", key, p.Name, key)
	}
	return b.String()
}

// ExportMappings emits the property-to-column writers used by spreadsheet
// export.
func ExportMappings(class models.ClassDescriptor) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		fmt.Fprintf(&b, "{ %s, item => item.%s },\n", localizedKey(p.Name), p.Name)
	}
	return b.String()
}

const columnIndent = "                "

// MudTdHeaders emits the data-grid columns of a list page. Name and
// Description share one stacked column.
func MudTdHeaders(class models.ClassDescriptor, primaryKey string) string {
	var b strings.Builder
	known := class.KnownProperties()

	hasName, hasDescription := false, false
	for _, p := range known {
		switch p.Name {
		case "Name":
			hasName = true
		case "Description":
			hasDescription = true
		}
	}

	if hasName || hasDescription {
		b.WriteString("<PropertyColumn Property=\"x => x.Name\" Title=\"@L[_currentDto.GetMemberDescription(x=>x.Name)]\">\n")
		b.WriteString("   <CellTemplate>\n")
		b.WriteString("      <div class=\"d-flex flex-column\">\n")
		if hasName {
			b.WriteString("        <MudText Typo=\"Typo.body2\">@context.Item.Name</MudText>\n")
		}
		if hasDescription {
			b.WriteString("        <MudText Typo=\"Typo.body2\" Class=\"mud-text-secondary\">@context.Item.Description</MudText>\n")
		}
		b.WriteString("     </div>\n")
		b.WriteString("    </CellTemplate>\n")
		b.WriteString("</PropertyColumn>\n")
	}

	for _, p := range known {
		if p.Name == primaryKey || p.Name == "Name" || p.Name == "Description" {
			continue
		}
		fmt.Fprintf(&b, "%s<PropertyColumn Property=\"x => x.%s\" Title=\"@L[_currentDto.GetMemberDescription(x=>x.%s)]\" />\n",
			columnIndent, p.Name, p.Name)
	}
	return b.String()
}

// formField renders the input element for one property.
type formField func(p models.PropertyDescriptor) string

func requiredError(name string) string {
	return fmt.Sprintf("RequiredError=\"@L[\"%s is required!\"]\"", strings.ToLower(naming.SplitCamelCase(name)))
}

func numericField(min string) formField {
	return func(p models.PropertyDescriptor) string {
		return fmt.Sprintf("<MudNumericField Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" @bind-Value=\"model.%[1]s\" For=\"@(() => model.%[1]s)\" Min=\"%[2]s\" Required=\"false\" %[3]s></MudNumericField>",
			p.Name, min, requiredError(p.Name))
	}
}

func textField(p models.PropertyDescriptor) string {
	switch {
	case strings.EqualFold(p.Name, "Name"):
		return fmt.Sprintf("<MudTextField Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" @bind-Value=\"model.%[1]s\" For=\"@(() => model.%[1]s)\" Required=\"true\" %[2]s></MudTextField>",
			p.Name, requiredError(p.Name))
	case strings.EqualFold(p.Name, "Description"):
		return fmt.Sprintf("<MudTextField Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" Lines=\"3\" For=\"@(() => model.%[1]s)\" @bind-Value=\"model.%[1]s\"></MudTextField>",
			p.Name)
	default:
		return plainTextField(p)
	}
}

func plainTextField(p models.PropertyDescriptor) string {
	return fmt.Sprintf("<MudTextField Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" @bind-Value=\"model.%[1]s\" For=\"@(() => model.%[1]s)\" Required=\"false\" %[2]s></MudTextField>",
		p.Name, requiredError(p.Name))
}

var formFields = map[models.TypeCategory]formField{
	models.CategoryText: textField,
	models.CategoryBoolean: func(p models.PropertyDescriptor) string {
		return fmt.Sprintf("<MudCheckBox Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" @bind-Checked=\"model.%[1]s\" For=\"@(() => model.%[1]s)\"></MudCheckBox>", p.Name)
	},
	models.CategoryInteger: numericField("0"),
	models.CategoryLong:    numericField("0"),
	models.CategoryDecimal: numericField("0.00m"),
	models.CategoryDouble:  numericField("0.00"),
	models.CategoryDateTime: func(p models.PropertyDescriptor) string {
		return fmt.Sprintf("<MudDatePicker Label=\"@L[model.GetMemberDescription(x=>x.%[1]s)]\" @bind-Date=\"model.%[1]s\" For=\"@(() => model.%[1]s)\" Required=\"false\" %[2]s></MudDatePicker>",
			p.Name, requiredError(p.Name))
	},
}

// MudFormFields emits one form input per non-key known property of an
// edit dialog.
func MudFormFields(class models.ClassDescriptor, primaryKey string) string {
	var b strings.Builder
	for _, p := range class.KnownProperties() {
		if p.Name == primaryKey {
			continue
		}
		field, ok := formFields[p.Type.Category]
		if !ok {
			field = plainTextField
		}
		b.WriteString("<MudItem xs=\"12\" md=\"6\">\n")
		b.WriteString(columnIndent + "        " + field(p) + "\n")
		b.WriteString(columnIndent + "</MudItem>\n")
	}
	return b.String()
}
