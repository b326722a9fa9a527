package recommend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- OpenAI types (internal) ---

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type RecommendService struct {
	db       *gorm.DB
	cfg      *config.Config
	customer *customers.CustomerService
	client   *http.Client
	now      func() time.Time
}

func NewRecommendService(db *gorm.DB, cfg *config.Config) *RecommendService {
	return &RecommendService{
		db:       db,
		cfg:      cfg,
		customer: customers.NewCustomerService(db),
		client:   &http.Client{Timeout: cfg.AITimeout},
		now:      time.Now,
	}
}

// ForVehicle produces service recommendations for one vehicle. The rule
// output is authoritative; when an AI provider is configured it may
// extend the list, and any provider failure falls back to the rules.
func (s *RecommendService) ForVehicle(tenantID, vehicleID uuid.UUID) ([]string, error) {
	vehicle, err := s.customer.GetVehicle(tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	history, err := s.customer.VehicleHistory(tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	recs := RuleRecommendations(vehicle.LastService, history, s.now().UTC())

	if s.cfg.OpenAIAPIKey == "" {
		return recs, nil
	}
	extra, err := s.aiSuggestions(vehicle, recs)
	if err != nil {
		slog.Warn("AI recommendation provider failed, using rules only", "error", err)
		return recs, nil
	}
	return mergeSuggestions(recs, extra), nil
}

// mergeSuggestions appends provider output after the rule output,
// dropping duplicates.
func mergeSuggestions(rules, extra []string) []string {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		seen[r] = struct{}{}
	}
	out := rules
	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (s *RecommendService) aiSuggestions(vehicle *customers.Vehicle, base []string) ([]string, error) {
	lastService := "never"
	if vehicle.LastService != nil {
		lastService = *vehicle.LastService
	}
	prompt := fmt.Sprintf(`A %d %s %s was last detailed on %s. The shop already plans to offer: %s.
Suggest up to 3 additional auto detailing services as a JSON array of strings. Return ONLY valid JSON.`,
		vehicle.Year, vehicle.Make, vehicle.Model, lastService, strings.Join(base, ", "))

	oaiReq := openAIRequest{
		Model: s.cfg.OpenAIModel,
		Messages: []openAIMessage{
			{Role: "system", Content: "You are an auto detailing advisor that returns only valid JSON arrays of service names."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   200,
	}

	reqBody, err := json.Marshal(oaiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", s.cfg.OpenAIAPIURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.OpenAIAPIKey)

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", httpResp.StatusCode, string(bodyBytes))
	}

	var oaiResp openAIResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&oaiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(oaiResp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONContent(oaiResp.Choices[0].Message.Content)

	var suggestions []string
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return suggestions, nil
}

func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
