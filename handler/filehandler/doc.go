// Package filehandler provides RotatingFileHandler, which appends formatted
// records to a file and rotates it by size into numbered backups.
//
// With Filename P and BackupCount N, the active file is P and backups are
// P.1 through P.N, P.1 being the most recently rotated-out file. A rotation
// shifts P.i to P.(i+1), renames P to P.1 and reopens P empty; whatever was
// at P.N is discarded. BackupCount 0 truncates P in place and keeps no
// history.
//
// Rotation failures never break the handler. The failure is reported as a
// RotationError, P is reopened for append so writes keep landing somewhere,
// and since P is still oversized the next write retries the rotation.
package filehandler
