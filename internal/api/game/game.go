package game

import (
	"errors"
	dto "last_queue/internal/api/dto/game"
	"last_queue/internal/config"
	"last_queue/internal/converter"
	"last_queue/internal/middleware"
	"last_queue/internal/service"
	"last_queue/pkg/req"
	"last_queue/pkg/resp"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv      service.GameService
	Narrative config.NarrativeConfig
	TokenCfg  config.TokenConfig
	Log       *log.Logger
}

type Handler struct {
	serv      service.GameService
	narrative config.NarrativeConfig
	tokenCfg  config.TokenConfig
	log       *log.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:      deps.Serv,
		narrative: deps.Narrative,
		tokenCfg:  deps.TokenCfg,
		log:       deps.Log.WithPrefix("http"),
	}
}

// Start создает прохождение и отдает токен в теле и в cookie run_token
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartRunRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.serv.Start(r.Context(), converter.ToStartRun(payload))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	setRunTokenCookie(w, view.Token, int(h.tokenCfg.RunTokenDuration().Seconds()))

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToRunResponse(*view, h.narrative))
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	view, err := h.serv.State(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRunResponse(*view, h.narrative))
}

func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	view, err := h.serv.Begin(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRunResponse(*view, h.narrative))
}

func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	view, err := h.serv.Decline(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRunResponse(*view, h.narrative))
}

// Advance выполняет текущую фазу. Тело необязательно: без выбора фаза идет дальше сама
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.AdvanceRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Advance(r.Context(), converter.ToChoice(payload))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAdvanceResponse(*result, h.narrative))
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	view, err := h.serv.Restart(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRunResponse(*view, h.narrative))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats, h.narrative))
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError переводит ошибки сервиса в статусы. Внутренние ошибки не показываются игроку
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoRunInContext):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRunNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidChoice), errors.Is(err, service.ErrInvalidSeed):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		runID, _ := middleware.RunIDFromContext(r.Context())
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "run_id", runID, "err", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// setRunTokenCookie устанавливает cookie с токеном прохождения
func setRunTokenCookie(w http.ResponseWriter, runToken string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RunTokenCookie,
		Value:    runToken,
		Path:     "/runs",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// Mount регистрирует маршруты игры. runAuth защищает маршруты текущего прохождения
func (h *Handler) Mount(r chi.Router, runAuth func(http.Handler) http.Handler) {
	r.Post("/runs", h.Start)
	r.Route("/runs/current", func(rr chi.Router) {
		rr.Use(runAuth)
		rr.Get("/", h.Current)
		rr.Post("/begin", h.Begin)
		rr.Post("/decline", h.Decline)
		rr.Post("/advance", h.Advance)
		rr.Post("/restart", h.Restart)
	})
	r.Get("/stats", h.Stats)
	r.Get("/healthz", h.Health)
}
