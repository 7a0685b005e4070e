// Package catalog holds the static table of dental treatments and conditions
// used by the odontogram editor. The table is the single authoritative copy,
// defined at build time and never mutated at runtime.
package catalog

import "strings"

// Category groups catalog entries by clinical discipline.
type Category string

const (
	CategoryPathology    Category = "patologia"
	CategoryRestoration  Category = "restauracion"
	CategoryProsthesis   Category = "protesis"
	CategoryEndodontics  Category = "endodoncia"
	CategorySurgery      Category = "cirugia"
	CategoryAnomaly      Category = "anomalia"
	CategoryTrauma       Category = "trauma"
	CategoryOrthodontics Category = "ortodoncia"

	// CategoryAll is the pseudo-category accepted by Search to disable filtering.
	CategoryAll Category = "all"
)

// Entry describes one treatment or condition type that can be charted.
type Entry struct {
	Code           string   // unique short uppercase code, e.g. "CAR"
	Name           string   // display name
	Sigla          string   // short code shown next to the name in list UIs
	Category       Category // clinical discipline
	Icon           string   // small glyph for list UIs
	AllowsExisting bool     // may be charted as an existing condition (blue)
	AllowsPlanned  bool     // may be charted as a planned treatment (red)
}

// entries is the authoritative catalog, in declaration order. Search results
// preserve this order.
var entries = []Entry{
	// Patología
	{Code: "CAR", Name: "Caries", Sigla: "CAR", Category: CategoryPathology, Icon: "●", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PUL", Name: "Pulpitis", Sigla: "PUL", Category: CategoryPathology, Icon: "◉", AllowsExisting: true, AllowsPlanned: false},
	{Code: "NEC", Name: "Necrosis pulpar", Sigla: "NEC", Category: CategoryPathology, Icon: "◉", AllowsExisting: true, AllowsPlanned: false},
	{Code: "ABS", Name: "Absceso periapical", Sigla: "ABS", Category: CategoryPathology, Icon: "◎", AllowsExisting: true, AllowsPlanned: false},
	{Code: "GIN", Name: "Gingivitis", Sigla: "GIN", Category: CategoryPathology, Icon: "∿", AllowsExisting: true, AllowsPlanned: false},
	{Code: "PDT", Name: "Periodontitis", Sigla: "PDT", Category: CategoryPathology, Icon: "∿", AllowsExisting: true, AllowsPlanned: false},
	{Code: "MOV", Name: "Movilidad dentaria", Sigla: "MOV", Category: CategoryPathology, Icon: "↔", AllowsExisting: true, AllowsPlanned: false},
	{Code: "DGO", Name: "Desgaste oclusal", Sigla: "DGO", Category: CategoryPathology, Icon: "≈", AllowsExisting: true, AllowsPlanned: false},

	// Restauración
	{Code: "AM", Name: "Amalgama", Sigla: "AM", Category: CategoryRestoration, Icon: "▪", AllowsExisting: true, AllowsPlanned: true},
	{Code: "RC", Name: "Resina compuesta", Sigla: "RC", Category: CategoryRestoration, Icon: "▪", AllowsExisting: true, AllowsPlanned: true},
	{Code: "IV", Name: "Ionómero de vidrio", Sigla: "IV", Category: CategoryRestoration, Icon: "▪", AllowsExisting: true, AllowsPlanned: true},
	{Code: "INL", Name: "Incrustación", Sigla: "INL", Category: CategoryRestoration, Icon: "▫", AllowsExisting: true, AllowsPlanned: true},
	{Code: "CV", Name: "Carilla estética", Sigla: "CV", Category: CategoryRestoration, Icon: "▭", AllowsExisting: true, AllowsPlanned: true},
	{Code: "SEL", Name: "Sellante de fosas y fisuras", Sigla: "SEL", Category: CategoryRestoration, Icon: "▫", AllowsExisting: true, AllowsPlanned: true},

	// Prótesis
	{Code: "CC", Name: "Corona completa", Sigla: "CC", Category: CategoryProsthesis, Icon: "○", AllowsExisting: true, AllowsPlanned: true},
	{Code: "CMC", Name: "Corona metal cerámica", Sigla: "CMC", Category: CategoryProsthesis, Icon: "○", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PF", Name: "Prótesis fija", Sigla: "PF", Category: CategoryProsthesis, Icon: "▬", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PR", Name: "Prótesis removible", Sigla: "PR", Category: CategoryProsthesis, Icon: "═", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PT", Name: "Prótesis total", Sigla: "PT", Category: CategoryProsthesis, Icon: "═", AllowsExisting: true, AllowsPlanned: true},
	{Code: "IMP", Name: "Implante", Sigla: "IMP", Category: CategoryProsthesis, Icon: "⚓", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PM", Name: "Perno muñón", Sigla: "PM", Category: CategoryProsthesis, Icon: "†", AllowsExisting: true, AllowsPlanned: true},

	// Endodoncia
	{Code: "TC", Name: "Tratamiento de conducto", Sigla: "TC", Category: CategoryEndodontics, Icon: "│", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PC", Name: "Pulpectomía", Sigla: "PC", Category: CategoryEndodontics, Icon: "│", AllowsExisting: true, AllowsPlanned: true},
	{Code: "PP", Name: "Pulpotomía", Sigla: "PP", Category: CategoryEndodontics, Icon: "│", AllowsExisting: true, AllowsPlanned: true},
	{Code: "APC", Name: "Apicectomía", Sigla: "APC", Category: CategoryEndodontics, Icon: "⌄", AllowsExisting: true, AllowsPlanned: true},

	// Cirugía
	{Code: "EXO", Name: "Extracción indicada", Sigla: "EXO", Category: CategorySurgery, Icon: "✕", AllowsExisting: false, AllowsPlanned: true},
	{Code: "AUS", Name: "Diente ausente", Sigla: "AUS", Category: CategorySurgery, Icon: "✕", AllowsExisting: true, AllowsPlanned: false},
	{Code: "RR", Name: "Resto radicular", Sigla: "RR", Category: CategorySurgery, Icon: "ʀʀ", AllowsExisting: true, AllowsPlanned: true},
	{Code: "CPE", Name: "Cirugía periodontal", Sigla: "CPE", Category: CategorySurgery, Icon: "✂", AllowsExisting: false, AllowsPlanned: true},
	{Code: "FRE", Name: "Frenectomía", Sigla: "FRE", Category: CategorySurgery, Icon: "✂", AllowsExisting: false, AllowsPlanned: true},

	// Anomalía
	{Code: "ECT", Name: "Erupción ectópica", Sigla: "ECT", Category: CategoryAnomaly, Icon: "↯", AllowsExisting: true, AllowsPlanned: false},
	{Code: "IMD", Name: "Diente impactado", Sigla: "IMD", Category: CategoryAnomaly, Icon: "⊓", AllowsExisting: true, AllowsPlanned: false},
	{Code: "SUP", Name: "Diente supernumerario", Sigla: "SUP", Category: CategoryAnomaly, Icon: "+", AllowsExisting: true, AllowsPlanned: false},
	{Code: "DIA", Name: "Diastema", Sigla: "DIA", Category: CategoryAnomaly, Icon: "∥", AllowsExisting: true, AllowsPlanned: false},
	{Code: "MIC", Name: "Microdoncia", Sigla: "MIC", Category: CategoryAnomaly, Icon: "·", AllowsExisting: true, AllowsPlanned: false},
	{Code: "MAC", Name: "Macrodoncia", Sigla: "MAC", Category: CategoryAnomaly, Icon: "⬤", AllowsExisting: true, AllowsPlanned: false},

	// Trauma
	{Code: "FC", Name: "Fractura coronaria", Sigla: "FC", Category: CategoryTrauma, Icon: "╲", AllowsExisting: true, AllowsPlanned: false},
	{Code: "FR", Name: "Fractura radicular", Sigla: "FR", Category: CategoryTrauma, Icon: "╲", AllowsExisting: true, AllowsPlanned: false},
	{Code: "LUX", Name: "Luxación", Sigla: "LUX", Category: CategoryTrauma, Icon: "↝", AllowsExisting: true, AllowsPlanned: false},
	{Code: "AVU", Name: "Avulsión", Sigla: "AVU", Category: CategoryTrauma, Icon: "↑", AllowsExisting: true, AllowsPlanned: false},

	// Ortodoncia
	{Code: "ORF", Name: "Aparato ortodóntico fijo", Sigla: "ORF", Category: CategoryOrthodontics, Icon: "◫", AllowsExisting: true, AllowsPlanned: true},
	{Code: "ORR", Name: "Aparato ortodóntico removible", Sigla: "ORR", Category: CategoryOrthodontics, Icon: "◫", AllowsExisting: true, AllowsPlanned: true},
	{Code: "RET", Name: "Retenedor", Sigla: "RET", Category: CategoryOrthodontics, Icon: "⌒", AllowsExisting: true, AllowsPlanned: true},
	{Code: "MDE", Name: "Mantenedor de espacio", Sigla: "MDE", Category: CategoryOrthodontics, Icon: "⊢", AllowsExisting: true, AllowsPlanned: true},
}

// All returns the full catalog in declaration order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of catalog entries.
func Len() int {
	return len(entries)
}

// Search returns the entries matching the free text query and category filter.
// Matching is a case-insensitive substring match against the display name,
// the sigla and the code. An empty query matches every entry. The category
// filter is skipped when CategoryAll is given. Result order is the catalog
// declaration order, no relevance ranking.
func Search(query string, category Category) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []Entry
	for _, e := range entries {
		if category != CategoryAll && category != "" && e.Category != category {
			continue
		}
		if q != "" && !matches(&e, q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e *Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Sigla), q) ||
		strings.Contains(strings.ToLower(e.Code), q)
}

// FindByCode returns the entry with the given code, matched case-insensitively.
func FindByCode(code string) (Entry, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, e := range entries {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}

// Categories returns the distinct categories in catalog order.
func Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
