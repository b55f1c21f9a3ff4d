package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codegen/internal/core/classify"
	"github.com/example/codegen/internal/models"
)

func prop(name, sourceType string) models.PropertyDescriptor {
	return models.PropertyDescriptor{Name: name, Type: classify.Classify(sourceType)}
}

func orderClass() models.ClassDescriptor {
	return models.ClassDescriptor{
		Name:     "Order",
		BaseName: "BaseEntity",
		Properties: []models.PropertyDescriptor{
			prop("Id", "int"),
			prop("Name", "string"),
			prop("CreatedAt", "DateTime?"),
		},
	}
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestFieldDeclarations_EndToEnd(t *testing.T) {
	got := lines(FieldDeclarations(orderClass(), "Id"))

	require.Len(t, got, 3)
	assert.Equal(t, "    public int Id { get; set; }", got[0])
	assert.Equal(t, "    public string Name { get; set; } = string.Empty;", got[1])
	assert.Equal(t, "    public DateTime? CreatedAt { get; set; }", got[2])
}

func TestFieldDeclarations_TypeRules(t *testing.T) {
	tests := []struct {
		name string
		prop models.PropertyDescriptor
		want string
	}{
		{"nullable primary key renders raw", models.PropertyDescriptor{Name: "Id", Type: classify.Classify("int?")}, "    public int Id { get; set; }"},
		{"text", prop("Code", "string"), "    public string? Code { get; set; }"},
		{"text array", prop("Tags", "List<string>"), "    public HashSet<string>? Tags { get; set; }"},
		{"dictionary", prop("Meta", "Dictionary<string, string>"), "    public Dictionary<string, string> Meta { get; set; }"},
		{"datetime", prop("DueAt", "DateTime"), "    public DateTime DueAt { get; set; }"},
		{"decimal nullable", prop("Total", "decimal?"), "    public decimal? Total { get; set; }"},
		{"int", prop("Count", "int"), "    public int Count { get; set; }"},
		{"bool", prop("Active", "bool"), "    public bool Active { get; set; }"},
		{"bool nullable", prop("Active", "bool?"), "    public bool? Active { get; set; }"},
		{"optional guid", prop("Ref", "Optional<Guid>"), "    public Guid? Ref { get; set; }"},
		{"long", prop("Big", "long"), "    public long Big { get; set; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := models.ClassDescriptor{Name: "X", Properties: []models.PropertyDescriptor{tt.prop}}
			assert.Equal(t, tt.want+"\n", FieldDeclarations(class, "Id"))
		})
	}
}

func TestFieldDeclarations_SkipsUnknownTypes(t *testing.T) {
	class := models.ClassDescriptor{
		Name: "Order",
		Properties: []models.PropertyDescriptor{
			prop("Id", "int"),
			prop("Customer", "Customer"),
			prop("Lines", "List<OrderLine>"),
		},
	}
	assert.Equal(t, "    public int Id { get; set; }\n", FieldDeclarations(class, "Id"))
}

func TestFieldAssignments_OneLinePerKnownProperty(t *testing.T) {
	class := models.ClassDescriptor{
		Name: "Invoice",
		Properties: []models.PropertyDescriptor{
			prop("Id", "int"),
			prop("Number", "string"),
			prop("Customer", "Customer"),
			prop("Paid", "bool"),
			prop("IssuedAt", "DateTime"),
		},
	}

	got := lines(FieldAssignments(class))
	want := []string{"Id", "Number", "Paid", "IssuedAt"}
	require.Len(t, got, len(want))
	for i, name := range want {
		assert.Equal(t, name+" = dto."+name+",", strings.TrimSpace(got[i]))
	}
}

func TestFieldAssignments_Empty(t *testing.T) {
	assert.Empty(t, FieldAssignments(models.ClassDescriptor{Name: "Empty"}))
}

func TestParameterBindings(t *testing.T) {
	class := models.ClassDescriptor{
		Name: "Order",
		Properties: []models.PropertyDescriptor{
			prop("Id", "int"),
			prop("Name", "string"),
			prop("CreatedAt", "DateTime?"),
			prop("Active", "bool?"),
			prop("Total", "decimal"),
			prop("Ref", "Guid"),
			prop("Meta", "Dictionary<string, string>"),
		},
	}

	got := strings.Split(strings.TrimPrefix(ParameterBindings(class), "\n"), "\n")
	want := []string{
		`.AddIntParameter("P_ID", entity.Id)`,
		`.AddVarchar2Parameter("P_NAME", entity.Name)`,
		`.AddDateTimeParameter("P_CREATED_AT", entity.CreatedAt)`,
		`.AddBoolCharParameter("P_ACTIVE", entity.Active)`,
		`.AddDecimalParameter("P_TOTAL", entity.Total)`,
		`.AddIntParameter("P_REF", (int)entity.Ref)`,
		`.AddIntParameter("P_META", (int)entity.Meta)`,
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, parameterIndent+want[i], got[i])
	}
}

func TestTemplateFields_SkipPrimaryKey(t *testing.T) {
	got := lines(TemplateFields(orderClass(), "Id"))
	assert.Equal(t, []string{
		"_localizer[_dto.GetMemberDescription(x=>x.Name)],",
		"_localizer[_dto.GetMemberDescription(x=>x.CreatedAt)],",
	}, got)
}

func TestImportExportMappings_IncludePrimaryKey(t *testing.T) {
	class := orderClass()
	class.Properties = append(class.Properties, prop("Active", "bool"))

	imports := lines(ImportMappings(class))
	require.Len(t, imports, 4)
	assert.Contains(t, imports[0], "item.Id = row[")
	assert.Contains(t, imports[3], "item.Active = Convert.ToBoolean(row[")

	exports := lines(ExportMappings(class))
	require.Len(t, exports, 4)
	assert.Contains(t, exports[0], "item => item.Id }")
}

func TestMudFragments(t *testing.T) {
	class := orderClass()
	class.Properties = append(class.Properties, prop("Description", "string"), prop("Qty", "int"))

	headers := MudTdHeaders(class, "Id")
	assert.Contains(t, headers, "@context.Item.Name")
	assert.Contains(t, headers, "@context.Item.Description")
	assert.Contains(t, headers, `Property="x => x.CreatedAt"`)
	assert.NotContains(t, headers, `Property="x => x.Id"`)

	form := MudFormFields(class, "Id")
	assert.Contains(t, form, `RequiredError="@L["name is required!"]"`)
	assert.Contains(t, form, `Lines="3"`)
	assert.Contains(t, form, "<MudDatePicker")
	assert.Contains(t, form, `Min="0"`)
	assert.Equal(t, 4, strings.Count(form, "<MudItem"))
}

func TestRender_ModelVariant(t *testing.T) {
	text := "namespace {namespace};\n// {rootnamespace} {selectns}\npublic class {itemName}Service // {itemNameUpper} {itemNameLower} {nameofPlural}\n{\n{parameterDefinition}\n{importFuncExpression}\n{unknownToken}\n}"
	names := Names{
		ItemName:        "Category",
		RootNamespace:   "Shop",
		Namespace:       "Shop.Core.Service",
		SelectNamespace: "Shop.Core",
	}

	got := Render(text, orderClass(), names, Options{Variant: models.VariantModel, PrimaryKey: "Id"})

	assert.Contains(t, got, "namespace Shop.Core.Service;\r\n")
	assert.Contains(t, got, "// Shop Shop.Core\r\n")
	assert.Contains(t, got, "CategoryService // CATEGORY category Categories")
	assert.Contains(t, got, `.AddVarchar2Parameter("P_NAME", entity.Name)`)
	assert.Contains(t, got, "{importFuncExpression}")
	assert.Contains(t, got, "{unknownToken}")
	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
}

func TestRender_CQRSVariant(t *testing.T) {
	text := "{importFuncExpression}|{exportFuncExpression}|{parameterDefinition}|{domainRootNs}"
	names := Names{ItemName: "Order", DomainRootNs: "Shop.Core"}

	got := Render(text, orderClass(), names, Options{Variant: models.VariantCQRS, PrimaryKey: "Id", LineEnding: "\n"})

	assert.Contains(t, got, "item.Name = row[")
	assert.Contains(t, got, "item => item.Name }")
	assert.Contains(t, got, "{parameterDefinition}")
	assert.True(t, strings.HasSuffix(got, "|Shop.Core"))
}

func TestRender_RepeatedTokens(t *testing.T) {
	got := Render("{itemName}-{itemName}-{itemName}", models.ClassDescriptor{}, Names{ItemName: "A"}, Options{})
	assert.Equal(t, "A-A-A", got)
}

func TestRender_EmptyTemplate(t *testing.T) {
	assert.Equal(t, "", Render("", orderClass(), Names{ItemName: "Order"}, Options{}))
}

func TestNormalizeLineEndings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		eol  string
		want string
	}{
		{"lf to crlf", "a\nb", "", "a\r\nb"},
		{"mixed", "a\r\nb\rc\n\rd", "", "a\r\nb\r\nc\r\nd"},
		{"to lf", "a\r\nb", "\n", "a\nb"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLineEndings(tt.in, tt.eol))
		})
	}
}

func TestCursorOffset(t *testing.T) {
	assert.Equal(t, 4, CursorOffset("abc $ def $"))
	assert.Equal(t, -1, CursorOffset("no marker"))
}
