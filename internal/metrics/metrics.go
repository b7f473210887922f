// metrics.go
//
// Storefront data service for the bakery brand site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of bakery-api.
// bakery-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// bakery-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with bakery-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bakery"

var (
	// DegradedReads counts collection reads that failed and were reported as unavailable.
	DegradedReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "degraded_reads_total",
		Help:      "Collection reads that failed in the storage backend.",
	}, []string{"collection"})

	// Seeds counts collections initialised from their default set.
	Seeds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_seeds_total",
		Help:      "Collections seeded from defaults on first read.",
	}, []string{"collection"})

	// Mutations counts persisted collection writes by operation.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_mutations_total",
		Help:      "Persisted collection writes.",
	}, []string{"collection", "op"})

	// Emails counts contact notification attempts by result.
	Emails = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_emails_total",
		Help:      "Contact notification emails by result.",
	}, []string{"result"})

	// UploadBytes observes accepted gallery upload sizes.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gallery_upload_bytes",
		Help:      "Size of accepted gallery uploads.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 7),
	})
)
