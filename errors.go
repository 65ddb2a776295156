package shardmap

import "errors"

// ErrInvalidShardCount is returned by New when the configured shard
// count is below one. Construction fails as a whole: no map is ever
// returned partially built.
var ErrInvalidShardCount = errors.New("shard count must be at least 1")
