package middlewares

import (
	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
}
