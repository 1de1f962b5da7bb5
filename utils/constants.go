// File: utils/constants.go
package utils

import "time"

// DirectoryCachePrefix is the prefix used for Redis provider-directory cache keys.
const DirectoryCachePrefix = "directory:"

// DirectoryCacheTTL is the time-to-live for cached provider profiles.
const DirectoryCacheTTL = 5 * time.Minute

// RulesCacheKey is the Redis key holding the warm copy of the global scheduling rules.
const RulesCacheKey = "rules:global"

// RulesCacheTTL bounds staleness of the warm rules copy.
const RulesCacheTTL = 30 * time.Minute
