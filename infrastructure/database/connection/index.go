package connection

import (
	"verifid.io/infrastructure/database/connection/cache"
	"verifid.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
