package utils

// SalonCachePrefix is the prefix used for Redis salon cache keys.
const SalonCachePrefix = "salon:"

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)
