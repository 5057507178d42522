package service

import (
	"time"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
	GetLowStockProducts() ([]model.Product, error)
}

type dashboardService struct {
	logRepo           repository.InventoryLogRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

func NewDashboardService(logRepo repository.InventoryLogRepository, productRepo repository.ProductRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{
		logRepo:           logRepo,
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.logRepo.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.logRepo.GetDashboardStats(s.lowStockThreshold)
}

func (s *dashboardService) GetLowStockProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	low := make([]model.Product, 0)
	for _, p := range products {
		if p.Stock < s.lowStockThreshold {
			low = append(low, p)
		}
	}
	return low, nil
}
