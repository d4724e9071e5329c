package store

import "github.com/roach88/oneclick/internal/model"

// storageErr wraps a driver failure for op as a model.StorageError.
func storageErr(op string, err error) error {
	return model.StorageError(op, err)
}

func launcherNotFound(op string, id int64) error {
	return model.NotFoundError(op, "launcher %d not found", id)
}

func resourceNotFound(op string, id int64) error {
	return model.NotFoundError(op, "resource %d not found", id)
}
