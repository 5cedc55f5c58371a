package playbook

import "sort"

var Routes = []string{
	"curl",
	"drag",
	"slant",
	"corner",
	"streak",
	"out",
	"post",
	"flat",
	"wheel",
	"swing_left",
	"swing_right",
	"seam",
	"stop_n_go",
	"jerk",
	"double_out",
	"angle",
	"sail",
	"pivot",
	"sluggo",
	"chair",
	"block",
	"check_release",
}

// Formation is a base formation and its subsets, in catalog order.
type Formation struct {
	Name    string
	Subsets []string
}

// Formations is the full layout catalog, empty sets included.
var Formations = []Formation{
	{Name: "t", Subsets: []string{"tight", "strong", "weak"}},
	{Name: "i", Subsets: []string{"pro", "power", "weak"}},
	{Name: "pro", Subsets: []string{"split", "slot", "tight"}},
	{Name: "singleback", Subsets: []string{"ace", "trips", "doubles"}},
	{Name: "wing", Subsets: []string{"right", "left", "stack"}},
	{Name: "double wing", Subsets: []string{"tight", "wide"}},
	{Name: "gun", Subsets: []string{"trips", "doubles", "bunch", "empty"}},
	{Name: "pistol", Subsets: []string{"base", "slot", "trips", "empty"}},
	{Name: "tandem", Subsets: []string{"slot", "wide"}},
}

// callSheet is the daily generator's table. It has no empty sets, and its
// order and lengths fix which call each seed draws.
var callSheet = []Formation{
	{Name: "t", Subsets: []string{"tight", "strong", "weak"}},
	{Name: "i", Subsets: []string{"pro", "power", "weak"}},
	{Name: "pro", Subsets: []string{"split", "slot", "tight"}},
	{Name: "singleback", Subsets: []string{"ace", "trips", "doubles"}},
	{Name: "wing", Subsets: []string{"right", "left", "stack"}},
	{Name: "double wing", Subsets: []string{"tight", "wide"}},
	{Name: "gun", Subsets: []string{"trips", "doubles", "bunch"}},
	{Name: "pistol", Subsets: []string{"base", "slot", "trips"}},
	{Name: "tandem", Subsets: []string{"slot", "wide"}},
}

var FormationTags = []string{"bunch", "x", "nasty"}

var baseCoverages = []string{"0", "1", "2", "3", "4", "6", "9"}

var coverageModifiers = []string{
	"press", "off man", "silver shoot pinch", "safety blitz", "hole", "buzz", "rat",
	"double", "willie bracket", "spy", "tampa", "high", "drop", "hard flat", "man",
	"cloud", "lb blitz", "cb zone blitz", "show 2", "show 4", "hard", "quarters",
	"flat", "match", "show",
}

var coverageStacks = []string{
	"press", "off man", "spy", "blitz", "show", "cloud", "drop", "hard flat", "match", "quarters",
}

// Coverages is every base, base+modifier and base+stacked pair, sorted and unique.
var Coverages = buildCoverages()

// ReceiverOrder maps keys 1-5 to receivers.
var ReceiverOrder = []string{"wr1", "wr2", "wr3", "te", "rb"}

func buildCoverages() []string {
	set := map[string]bool{}
	for _, base := range baseCoverages {
		set[base] = true
		for _, m := range coverageModifiers {
			set[base+" "+m] = true
		}
		for _, a := range coverageStacks {
			for _, b := range coverageStacks {
				if a == b {
					continue
				}
				set[base+" "+a+" "+b] = true
			}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func subsetsOf(table []Formation, name string) []string {
	for _, f := range table {
		if f.Name == name {
			return f.Subsets
		}
	}
	return nil
}

func formationNames(table []Formation) []string {
	out := make([]string, len(table))
	for i, f := range table {
		out[i] = f.Name
	}
	return out
}
