package constant

import "time"

const (
	POST_PAGE_SIZE        = 10
	POST_TITLE_MAX_LENGTH = 200

	REACTION_CACHE_NAMESPACE = "reactions"
	REACTION_CACHE_TTL       = 60 * time.Second
)
