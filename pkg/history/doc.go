// Package history records solved grids so past runs can be listed and
// inspected later.
//
// A [Record] holds the answers of one solve together with the input hash, so
// the same grid solved twice produces two records with equal hashes. Records
// are kept by a [Store]:
//
//   - [NullStore] discards everything; it is used when history is disabled.
//   - [SQLStore] writes to a local SQLite file (the CLI default, see
//     [OpenSQLite]) or a PostgreSQL database ([OpenPostgres]).
//   - [MongoStore] writes to a MongoDB collection for shared deployments.
//
// [Open] builds the store named by [Options.Backend].
package history
