package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/http/middleware"
	"github.com/xavierca1/launch-webhooks/internal/usecase"
)

type CaptureHandler struct {
	Resolver    *usecase.ResolveLaunchUseCase
	CaptureUC   *usecase.CaptureLeadUseCase
	rateLimiter *RateLimiter
}

func NewCaptureHandler(resolver *usecase.ResolveLaunchUseCase, captureUC *usecase.CaptureLeadUseCase) *CaptureHandler {
	return &CaptureHandler{
		Resolver:    resolver,
		CaptureUC:   captureUC,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min por IP
	}
}

type CaptureResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleByLaunchCode: endereçamento legado pelo launch_code na URL.
func (h *CaptureHandler) HandleByLaunchCode(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	launch, err := h.Resolver.ByCode(r.Context(), chi.URLParam(r, "launchCode"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	h.capture(w, r, launch)
}

// HandleByWebhookID: endereçamento preferido, pelo id opaco da integração.
func (h *CaptureHandler) HandleByWebhookID(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	launch, _, err := h.Resolver.ByWebhookID(r.Context(), chi.URLParam(r, "webhookID"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	h.capture(w, r, launch)
}

func (h *CaptureHandler) capture(w http.ResponseWriter, r *http.Request, launch *entity.Launch) {
	var input usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	reqCtx := usecase.RequestContext{
		IP:        getClientIP(r),
		UserAgent: r.Header.Get("User-Agent"),
		Referer:   r.Header.Get("Referer"),
	}

	leadID, err := h.CaptureUC.Execute(r.Context(), launch, input, reqCtx)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCaptured()
	writeJSON(w, http.StatusOK, CaptureResponse{
		Success: true,
		LeadID:  leadID,
		Message: "Lead captured successfully",
	})
}

func (h *CaptureHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.rateLimiter.Allow(getClientIP(r)) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
	return false
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
