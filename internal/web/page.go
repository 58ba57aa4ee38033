package web

import (
	"html/template"
	"regexp"
	"sort"

	"github.com/rpggio/statustracker/internal/domain/tracked"
)

// Section holds the records of one classification.
type Section struct {
	Type       tracked.Classification
	Count      int
	Categories []CategoryGroup
}

// CategoryGroup holds the records of one category within a section.
type CategoryGroup struct {
	Name    string
	Records []tracked.Record
}

// PageData is the data rendered by the index template.
type PageData struct {
	Total    int
	Degraded int
	Sections []Section
	Error    string
}

// uncategorized names the group of records whose category name is empty.
const uncategorized = "Uncategorized"

// Group splits records by classification, Bug first, then by category name.
// Both sections are always present. Categories are sorted by name and records
// keep their input order.
func Group(records []tracked.Record) []Section {
	order := []tracked.Classification{tracked.ClassBug, tracked.ClassFeature}
	byType := map[tracked.Classification]map[string][]tracked.Record{}
	for _, c := range order {
		byType[c] = map[string][]tracked.Record{}
	}

	for _, rec := range records {
		class := rec.Type
		if !class.Valid() {
			class = tracked.ClassBug
		}
		name := rec.CategoryName
		if name == "" {
			name = uncategorized
		}
		byType[class][name] = append(byType[class][name], rec)
	}

	sections := make([]Section, 0, len(order))
	for _, class := range order {
		cats := byType[class]
		names := make([]string, 0, len(cats))
		for name := range cats {
			names = append(names, name)
		}
		sort.Strings(names)

		sec := Section{Type: class, Categories: make([]CategoryGroup, 0, len(names))}
		for _, name := range names {
			sec.Categories = append(sec.Categories, CategoryGroup{Name: name, Records: cats[name]})
			sec.Count += len(cats[name])
		}
		sections = append(sections, sec)
	}
	return sections
}

func newPageData(records []tracked.Record) PageData {
	data := PageData{Total: len(records), Sections: Group(records)}
	for _, rec := range records {
		if rec.Degraded() {
			data.Degraded++
		}
	}
	return data
}

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// labelColor returns a CSS colour for a GitHub label colour, grey when the
// value is not a six digit hex string.
func labelColor(color string) template.CSS {
	if !hexColor.MatchString(color) {
		return template.CSS("#9e9e9e")
	}
	return template.CSS("#" + color)
}
