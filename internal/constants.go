/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent = "swiss-standings/0.4.0 (+https://github.com/mikeb26/swiss-standings)"
	// WebCacheBucket is the default S3 bucket backing the http cache
	WebCacheBucket = "bopmatic-swiss-standings-prod-webcache"
	CachePrefix    = "swisstd"

	DefaultPollInterval = 2 * time.Minute
	// tournament files change every round so cached copies must expire fast
	DefaultCacheMaxAge = 30 * time.Second
)
