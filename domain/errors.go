package domain

import "errors"

var (
	ErrCorruptSnapshot = errors.New("corrupt-snapshot")
	SnapshotWriteError = errors.New("snapshot-write-error")
)
