package repository

import (
	"sync"

	"verifid.io/entities"
	"verifid.io/infrastructure/database/connection/datastore"
	"verifid.io/infrastructure/database/repository/mongo"
)

var sessionArchiveOnce = sync.Once{}

var sessionArchiveRepository mongo.MongoRepository[entities.Session]

// SessionArchiveRepo persists finished sessions for audit. Live sessions
// stay in the in-memory store; only terminal ones land here.
func SessionArchiveRepo() *mongo.MongoRepository[entities.Session] {
	sessionArchiveOnce.Do(func() {
		sessionArchiveRepository = mongo.MongoRepository[entities.Session]{Model: datastore.SessionArchiveModel}
	})
	return &sessionArchiveRepository
}
