package model

const KVCollection = "kv"

// KVDocument holds one serialized value under a fixed key
type KVDocument struct {
	Key         string `bson:"_id"`
	Value       []byte `bson:"value"`
	LastUpdated int64  `bson:"last_updated"` // Unix timestamp of last write
}
