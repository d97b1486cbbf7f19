package services

import (
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/repositories"
)

// Services holds all service instances
type Services struct {
	Calculation CalculationService
	Log         LogService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, eng *engine.Engine, logger *zap.Logger) *Services {
	return &Services{
		Calculation: NewCalculationService(eng, repos.Log, logger),
		Log:         NewLogService(repos.Log),
	}
}
