package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"

	// ConfigError represents an invalid or incomplete configuration.
	ConfigError ErrorCode = "config_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"

	// KafkaSeekError represents a failure to position the order reader.
	KafkaSeekError ErrorCode = "kafka_seek_error"
	// KafkaReadError represents a failure to read from the order topic.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaWriteError represents a failure to append to the log topic.
	KafkaWriteError ErrorCode = "kafka_write_error"

	// SnapshotMarshalError represents a snapshot that could not be encoded or decoded.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotStoreError represents a failure to persist a snapshot.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotLoadError represents a failure to read the latest snapshot.
	SnapshotLoadError ErrorCode = "snapshot_load_error"

	// OrderBookCorruptedError represents a book whose depth disagrees with its own index.
	OrderBookCorruptedError ErrorCode = "order_book_corrupted"
	// EngineRecoveryError represents a failure to restore the engine from the snapshot store.
	EngineRecoveryError ErrorCode = "engine_recovery_error"
	// EngineStopTimeout represents stages that did not exit before the stop deadline.
	EngineStopTimeout ErrorCode = "engine_stop_timeout"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
