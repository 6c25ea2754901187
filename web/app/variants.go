package app

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/JaimeStill/monotile/pkg/web"
)

// ErrUnknownVariant is returned when a variant name has no route table.
var ErrUnknownVariant = errors.New("unknown variant")

var (
	homeView         = web.ViewDef{Route: "/", Template: "home.html", Title: "Monotile Explorer"}
	singleTileView   = web.ViewDef{Route: "/single-tile", Template: "index.html", Title: "Single Tile"}
	singleView       = web.ViewDef{Route: "/single", Template: "single.html", Title: "Single Tile"}
	continuumView    = web.ViewDef{Route: "/continuum", Template: "continuum.html", Title: "Continuum"}
	infiniteView     = web.ViewDef{Route: "/infinite", Template: "infinite.html", Title: "Infinite Tiling"}
	clusterView      = web.ViewDef{Route: "/cluster", Template: "cluster.html", Title: "Cluster"}
	chainsView       = web.ViewDef{Route: "/chains", Template: "chains.html", Title: "Chains"}
	substitutionView = web.ViewDef{Route: "/substitution", Template: "substitution.html", Title: "Substitution"}
	constraintView   = web.ViewDef{Route: "/constraint-tester", Template: "constraint-tester.html", Title: "Constraint Tester"}
)

var notFoundView = web.ViewDef{Template: "404.html", Title: "Not Found"}

var variants = map[string][]web.ViewDef{
	"tiles":     {homeView, singleTileView, continuumView},
	"basic":     {homeView, singleTileView},
	"explorer":  {homeView, singleView, infiniteView, clusterView, chainsView},
	"continuum": {homeView, singleTileView, continuumView, infiniteView},
	"studio":    {homeView, singleView, clusterView, chainsView, substitutionView, constraintView},
}

// Variants returns the names of all route table variants, sorted.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Views returns a copy of the route table for the named variant.
func Views(variant string) ([]web.ViewDef, error) {
	views, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownVariant, variant, Variants())
	}
	return slices.Clone(views), nil
}
