package controllers

import (
	"catalogapi/config"
	"catalogapi/storage"
)

// resultPerPage is the fixed page size of every list endpoint.
const resultPerPage = 100

// App carries the collaborators the handlers share: the asset store, the
// reaper that removes assets off the request path, the upload policy
// validator and the auth settings.
type App struct {
	Store   storage.Store
	Reaper  *storage.Reaper
	Uploads *storage.Validator
	Auth    config.AuthConfig
}
