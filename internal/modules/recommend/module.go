package recommend

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecommendModule exposes per-vehicle service recommendations. It owns no
// tables; it reads vehicles and service history and applies rules plus an
// optional AI provider.
type RecommendModule struct{}

func New() *RecommendModule {
	return &RecommendModule{}
}

func (m *RecommendModule) ID() string {
	return "recommend"
}

func (m *RecommendModule) Models() []interface{} {
	return nil
}

func (m *RecommendModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewRecommendService(db, cfg)
	handler := NewRecommendHandler(service)

	router.Get("/recommendations/:vehicleId", handler.GetRecommendations)
}
