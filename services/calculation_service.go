package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/formatter"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/repositories"
)

// Calculation is a computed result, its display form and the log entry written for it
type Calculation struct {
	Result  *engine.Result
	Display formatter.Display
	Entry   *models.LogEntry
}

// CalculationService interface defines the calculator business logic
type CalculationService interface {
	CalculateTop(ctx context.Context, operatorID string, form *models.TopForm) (*Calculation, error)
	CalculateBottom(ctx context.Context, operatorID string, form *models.BottomForm) (*Calculation, error)
	CalculateVariable(ctx context.Context, operatorID string, form *models.VariableForm) (*Calculation, error)
}

// calculationService implements CalculationService interface
type calculationService struct {
	engine  *engine.Engine
	logRepo repositories.LogRepository
	logger  *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewCalculationService creates a new calculation service
func NewCalculationService(eng *engine.Engine, logRepo repositories.LogRepository, logger *zap.Logger) CalculationService {
	return &calculationService{
		engine:  eng,
		logRepo: logRepo,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CalculateTop runs the second-round water calculation
func (s *calculationService) CalculateTop(ctx context.Context, operatorID string, form *models.TopForm) (*Calculation, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	weight, err := engine.ParseWeight(form.Weight.String())
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Top(engine.TopRequest{Weight: weight, Proof: form.ProofString()})
	if err != nil {
		return nil, err
	}

	inputs := models.LogInputs{Weight: form.Weight.String(), Proof: form.ProofString()}
	return s.record(ctx, operatorID, result, inputs), nil
}

// CalculateBottom runs the first water calculation from distillate
func (s *calculationService) CalculateBottom(ctx context.Context, operatorID string, form *models.BottomForm) (*Calculation, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	weight, err := engine.ParseWeight(form.DistWeight.String())
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Bottom(engine.BottomRequest{DistWeight: weight, DistProof: form.DistProof.String()})
	if err != nil {
		return nil, err
	}

	inputs := models.LogInputs{DistWeight: form.DistWeight.String(), DistProof: form.DistProof.String()}
	return s.record(ctx, operatorID, result, inputs), nil
}

// CalculateVariable runs the calculation against an arbitrary target proof
func (s *calculationService) CalculateVariable(ctx context.Context, operatorID string, form *models.VariableForm) (*Calculation, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	weight, err := engine.ParseWeight(form.Weight.String())
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Variable(engine.VariableRequest{
		Weight:       weight,
		CurrentProof: form.CurrentProof.String(),
		TargetProof:  form.TargetProof.String(),
	})
	if err != nil {
		return nil, err
	}

	inputs := models.LogInputs{
		Weight:       form.Weight.String(),
		CurrentProof: form.CurrentProof.String(),
		TargetProof:  form.TargetProof.String(),
	}
	return s.record(ctx, operatorID, result, inputs), nil
}

// record appends the log entry for a successful calculation. A failed append is
// logged and the calculation is still returned.
func (s *calculationService) record(ctx context.Context, operatorID string, result *engine.Result, inputs models.LogInputs) *Calculation {
	entry := &models.LogEntry{
		ID:         s.newID(),
		Timestamp:  s.now().UTC(),
		Mode:       result.Mode,
		OperatorID: operatorID,
		Inputs:     inputs,
		Outputs: models.LogOutputs{
			ConversionFactor:       result.ConversionFactor,
			TargetConversionFactor: copyFloat(result.TargetConversionFactor),
			WaterToAdd:             result.WaterToAdd,
			NewWeight:              copyFloat(result.NewWeight),
		},
	}

	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record calculation",
			zap.String("entry_id", entry.ID),
			zap.String("mode", string(entry.Mode)),
			zap.String("operator_id", operatorID),
			zap.Error(err),
		)
	}

	return &Calculation{
		Result:  result,
		Display: formatter.Render(result),
		Entry:   entry,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
