package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/api/dto"
	"github.com/prodline/workorder-tracker/internal/domain"
)

// bearerToken extracts the credential from the Authorization header. A
// missing or malformed header yields an empty credential, which the
// verifier rejects as unauthenticated.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		WorkOrderID:  ticket.WorkOrderID,
		AreaID:       ticket.AreaID,
		SubmittedBy:  ticket.SubmittedBy,
		Priority:     ticket.Priority,
		Description:  ticket.Description,
		ImageURLs:    ticket.ImageURLs,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

func workOrderResponse(order *domain.WorkOrder) dto.WorkOrderResponse {
	return dto.WorkOrderResponse{
		ID:              order.ID,
		WorkOrderNumber: order.WorkOrderNumber,
		ASMNumber:       order.ASMNumber,
		Description:     order.Description,
		Status:          order.Status,
		CreatedBy:       order.CreatedBy,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func areaResponse(area *domain.Area) dto.AreaResponse {
	return dto.AreaResponse{ID: area.ID, Name: area.Name, CreatedAt: area.CreatedAt}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          user.Role,
		AccessGranted: user.AccessGranted,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
