package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainInventory "stocky-backend/internal/domain/inventory"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

func (s *Service) CreateAlert(ctx context.Context, actor *domainUser.User, req *CreateAlertRequest) (*AlertResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.SKUID != nil {
		if _, err := s.skuRepo.GetByID(ctx, *req.SKUID); err != nil {
			return nil, err
		}
	}

	alert := &domainInventory.Alert{
		AlertType:      domainInventory.AlertType(req.AlertType),
		Message:        utils.SanitizeString(req.Message),
		ThresholdValue: req.ThresholdValue,
		SKUID:          req.SKUID,
		CreatedBy:      actor.ID,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	logger.Info("Alert created",
		zap.String("alert_id", alert.ID.String()),
		zap.String("alert_type", string(alert.AlertType)),
		zap.String("event", "alert_created"),
	)

	return ToAlertResponse(alert), nil
}

func (s *Service) ListActiveAlerts(ctx context.Context, page, pageSize int) (*AlertListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	alerts, total, err := s.alertRepo.ListActive(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = *ToAlertResponse(alert)
	}

	return &AlertListResponse{
		Alerts:     responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *Service) AcknowledgeAlert(ctx context.Context, alertID uuid.UUID) (*AlertResponse, error) {
	if err := s.alertRepo.Acknowledge(ctx, alertID); err != nil {
		return nil, err
	}

	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	logger.Info("Alert acknowledged",
		zap.String("alert_id", alertID.String()),
		zap.String("event", "alert_acknowledged"),
	)

	return ToAlertResponse(alert), nil
}
