package bootstrap

import (
	"time"

	"engagement-scheduler/internal/handler/middleware"
	"engagement-scheduler/internal/pkg/config"
	"engagement-scheduler/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		func(s *jwt.Service) middleware.TokenValidator { return s },
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, tokenDuration)
}
