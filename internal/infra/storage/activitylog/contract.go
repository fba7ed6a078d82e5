package activitylog

import "github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
