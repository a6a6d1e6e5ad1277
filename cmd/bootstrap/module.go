package bootstrap

import (
	"engagement-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	RegistryModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	CronModule,
)
