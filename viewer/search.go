// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/laralab/heartanalyzer/api"
)

// MatchThreshold is the minimum Jaro-Winkler similarity between the
// query and a word of the patient name for a fuzzy match.
const MatchThreshold = 0.85

// FilterPatients returns the indexes of the patients whose name
// contains the query or has a word similar to it, in list order.
// An empty query matches all patients.
func FilterPatients(ps []api.PatientSummary, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	idx := make([]int, 0, len(ps))
	jw := metrics.NewJaroWinkler()
	for i, p := range ps {
		if query == "" || matchName(jw, strings.ToLower(p.Name), query) {
			idx = append(idx, i)
		}
	}
	return idx
}

func matchName(m strutil.StringMetric, name, query string) bool {
	if strings.Contains(name, query) {
		return true
	}
	for _, w := range strings.Fields(name) {
		if strutil.Similarity(w, query, m) >= MatchThreshold {
			return true
		}
	}
	return false
}
