package raster

import "sync"

// NumShards must be a power of two.
const NumShards = 1024

// pixelLocks stripes canvas pixels over a fixed set of mutexes so concurrent
// splats can add into the same pixel without tearing a channel triple.
type pixelLocks struct{ shards [NumShards]sync.Mutex }

func (pl *pixelLocks) shard(base int) *sync.Mutex {
	return &pl.shards[(base/3)&(NumShards-1)]
}
