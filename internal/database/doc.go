// Package database stores an image index in SQLite.
//
// It is the sink behind "imgindex --format sqlite". The images table holds
// one row per indexed file (absolute path, modification time, optional
// dimensions); the metadata table records when and where the index was
// built. Each ReplaceImages call rewrites the table inside one transaction,
// so readers see either the previous index or the new one.
//
// The database uses WAL mode and creates its schema on open.
package database
