package booking

import (
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
)

// DBExecutor is satisfied by *sql.DB, *dbmetrics.DB and open transactions
type DBExecutor = dbmetrics.DBExecutor
