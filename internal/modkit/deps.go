package modkit

import (
	"agenda/internal/modkit/repokit"
	"agenda/internal/platform/config"
	"agenda/internal/platform/logger"
	"agenda/internal/platform/store"
)

// Deps are the shared handles every module is built from; CH may be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
