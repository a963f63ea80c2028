package storage

import (
	"context"
	"mime/multipart"

	"catalogapi/apperrors"
)

// SaveAll validates the whole batch, then stores each file under a freshly
// generated name and returns the names in upload order. A storage failure
// aborts with AssetWriteError; files of the batch already written are handed
// to the reaper so no document ends up referencing half a batch.
func SaveAll(ctx context.Context, store Store, v *Validator, reaper *Reaper, files []*multipart.FileHeader) ([]string, error) {
	types, err := v.ValidateBatch(files)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			discard(reaper, names)
			return nil, &apperrors.AssetWriteError{Name: fh.Filename, Err: err}
		}
		name := NewAssetName()
		err = store.Put(ctx, name, f, fh.Size, types[i])
		f.Close()
		if err != nil {
			discard(reaper, names)
			return nil, &apperrors.AssetWriteError{Name: name, Err: err}
		}
		names = append(names, name)
	}
	return names, nil
}

func discard(reaper *Reaper, names []string) {
	if reaper != nil && len(names) > 0 {
		reaper.Discard(names...)
	}
}
