package model

import "time"

// Category identifies one of the coverage accounting buckets.
type Category string

const (
	// CategoryModules counts discovered source files by relative path.
	CategoryModules Category = "modules"
	// CategoryGlobals counts qualified top-level binding names.
	CategoryGlobals Category = "globals"
	// CategoryFunctions counts qualified function-like declaration names.
	CategoryFunctions Category = "functions"
)

// Categories lists the accounting buckets in reporting order.
var Categories = []Category{CategoryModules, CategoryGlobals, CategoryFunctions}

// Tally is a (documented, total) count pair for one category.
type Tally struct {
	Documented int `yaml:"documented"`
	Total      int `yaml:"total"`
}

// Percent returns the coverage percentage for the tally. An empty
// category cannot be under-documented, so a zero total reports 100.
func (t Tally) Percent() float64 {
	if t.Total == 0 {
		return 100.0
	}

	return float64(t.Documented) / float64(t.Total) * 100
}

// Add accumulates another tally into this one.
func (t Tally) Add(other Tally) Tally {
	return Tally{
		Documented: t.Documented + other.Documented,
		Total:      t.Total + other.Total,
	}
}

// FileCoverage records the audit outcome for a single source file.
type FileCoverage struct {
	// Path is the file's identity: its path relative to the code root,
	// always forward-slash separated.
	Path string `yaml:"path"`

	// ModuleDocumented reports whether the relative path itself appears
	// in the documentation corpus.
	ModuleDocumented bool `yaml:"module_documented"`

	Globals   Tally `yaml:"globals"`
	Functions Tally `yaml:"functions"`
}

// Report is the persisted result of one audit run.
type Report struct {
	CodeRoot    string    `yaml:"code_root"`
	DocRoot     string    `yaml:"doc_root"`
	GeneratedAt time.Time `yaml:"generated_at"`

	// ShardIndex/ShardCount identify the slice of files this report
	// covers. A full run is shard 0 of 1.
	ShardIndex int `yaml:"shard_index"`
	ShardCount int `yaml:"shard_count"`

	Files []FileCoverage `yaml:"files"`
}

// CategoryTallies derives the three coverage tallies from the per-file
// records. Qualified names are unique per file, so summing per-file
// tallies matches set-union accounting over the whole run.
func (r Report) CategoryTallies() map[Category]Tally {
	tallies := make(map[Category]Tally, len(Categories))
	for _, category := range Categories {
		tallies[category] = Tally{}
	}

	for _, file := range r.Files {
		modules := tallies[CategoryModules]
		modules.Total++

		if file.ModuleDocumented {
			modules.Documented++
		}

		tallies[CategoryModules] = modules
		tallies[CategoryGlobals] = tallies[CategoryGlobals].Add(file.Globals)
		tallies[CategoryFunctions] = tallies[CategoryFunctions].Add(file.Functions)
	}

	return tallies
}

// Overall returns the combined coverage percentage across all three
// categories: sum of documented counts over sum of totals, times 100.
// A combined total of zero reports 100.
func (r Report) Overall() float64 {
	var combined Tally
	for _, tally := range r.CategoryTallies() {
		combined = combined.Add(tally)
	}

	return combined.Percent()
}
