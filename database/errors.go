package database

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyExists     = errors.New("record already exists")
	ErrUnsupportedDBType = errors.New("unsupported database type")
)
