// Package storage provides the blob backends behind the character asset
// store. Every backend stores one opaque object per key and replaces it
// whole on write; readers see either the previous object or the new one.
//
// Available backends:
//   - FileBackend: local filesystem, written via temp file and rename
//   - S3Backend: Amazon S3 or an S3-compatible service (MinIO, Ceph RGW)
//   - RedisBackend: Redis string values
package storage
