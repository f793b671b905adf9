// Package redis is an adapter.Client that keeps tables in Redis hashes,
// built on go-redis/v9.
//
// Every table uses two keys:
//
//	<prefix><table>:rows  hash of id -> JSON encoded row
//	<prefix><table>:seq   serial id counter (INCRBY)
//
// Reads load the hash and evaluate filters, ordering and limits in process
// with the same semantics as the memory adapter. Inserts write in a MULTI
// pipeline. Updates and deletes run under WATCH and retry on conflict.
// The layout suits small reference tables, not large datasets.
package redis
