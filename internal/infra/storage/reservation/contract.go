package reservation

import "github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"

// DBExecutor интерфейс выполнения запросов, реализуется *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
