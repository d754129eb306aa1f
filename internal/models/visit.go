// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SiteVisit is one day-bucketed visit counter row. Rows are maintained by
// an atomic upsert so concurrent first-visits of a day cannot produce
// duplicates or lost increments.
type SiteVisit struct {
	ID    int64     `json:"id"`
	Date  time.Time `json:"visit_date"`
	Count int       `json:"count"`
}
