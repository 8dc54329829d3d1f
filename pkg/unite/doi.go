package unite

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Release is one entry of the DOI table.
type Release struct {
	Version    string
	TaxonGroup string
	Singletons bool
	DOI        string
}

// dois lists UNITE DOIs by version, taxon group and singletons flag.
// Source: https://unite.ut.ee/repository.php
// It is never modified after initialization.
var dois = map[string]map[string]map[bool]string{
	"9.0": {
		"fungi": {
			false: "10.15156/BIO/2938079",
			true:  "10.15156/BIO/2938080",
		},
		"eukaryotes": {
			false: "10.15156/BIO/2938081",
			true:  "10.15156/BIO/2938082",
		},
	},
	"8.3": {
		"fungi": {
			false: "10.15156/BIO/1264708",
			true:  "10.15156/BIO/1264763",
		},
		"eukaryotes": {
			false: "10.15156/BIO/1264819",
			true:  "10.15156/BIO/1264861",
		},
	},
	"8.2": {
		"fungi": {
			false: "10.15156/BIO/786385",
			true:  "10.15156/BIO/786387",
		},
		"eukaryotes": {
			false: "10.15156/BIO/786386",
			true:  "10.15156/BIO/786388",
		},
	},
}

// GetDOI returns the DOI of a UNITE release. It fails with UnknownDOIError
// naming the first of version, taxon group or singletons that has no
// entry in the table.
func GetDOI(version, taxonGroup string, singletons bool) (string, error) {
	groups, ok := dois[version]
	if !ok {
		return "", UnknownDOIError("version", version, Versions())
	}

	variants, ok := groups[taxonGroup]
	if !ok {
		return "", UnknownDOIError(
			"taxon group", taxonGroup,
			slices.Sorted(maps.Keys(groups)),
		)
	}

	doi, ok := variants[singletons]
	if !ok {
		var known []string
		for k := range variants {
			known = append(known, strconv.FormatBool(k))
		}
		slices.Sort(known)
		return "", UnknownDOIError(
			"singletons", strconv.FormatBool(singletons), known,
		)
	}
	return doi, nil
}

// Versions returns known release versions, newest first.
func Versions() []string {
	res := slices.Collect(maps.Keys(dois))
	slices.SortFunc(res, func(a, b string) int {
		return cmpVersion(b, a)
	})
	return res
}

// TaxonGroups returns taxon groups known for any version, sorted
// alphabetically.
func TaxonGroups() []string {
	set := make(map[string]struct{})
	for _, groups := range dois {
		for g := range groups {
			set[g] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Releases returns all entries of the DOI table. Newest versions go
// first, then entries are sorted by taxon group, releases without
// singletons precede releases with singletons.
func Releases() []Release {
	var res []Release
	for _, v := range Versions() {
		groups := dois[v]
		for _, g := range slices.Sorted(maps.Keys(groups)) {
			for _, s := range []bool{false, true} {
				doi, ok := groups[g][s]
				if !ok {
					continue
				}
				res = append(res, Release{
					Version:    v,
					TaxonGroup: g,
					Singletons: s,
					DOI:        doi,
				})
			}
		}
	}
	return res
}

// cmpVersion compares dot-separated numeric versions. Non-numeric
// parts are compared as strings.
func cmpVersion(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := range max(len(as), len(bs)) {
		var pa, pb string
		if i < len(as) {
			pa = as[i]
		}
		if i < len(bs) {
			pb = bs[i]
		}
		na, errA := strconv.Atoi(pa)
		nb, errB := strconv.Atoi(pb)
		var c int
		if errA == nil && errB == nil {
			c = cmp.Compare(na, nb)
		} else {
			c = cmp.Compare(pa, pb)
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
