package timeline

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/middleware"
	"clinical-sharing/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Varios pacientes: los inaccesibles se omiten
	r.Get("/timeline", timelineHandler(svc))

	// Un paciente: sin acceso => 403
	r.Get("/patients/{patientID}/timeline", patientTimelineHandler(svc))
}

// eventResponse representa un evento normalizado del timeline.
type eventResponse struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	Type        EventType         `json:"type"`
	Date        time.Time         `json:"date"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
}

type groupResponse struct {
	PatientID string          `json:"patient_id,omitempty"`
	Day       string          `json:"day,omitempty"`
	Events    []eventResponse `json:"events"`
}

type timelineResponse struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Group  GroupMode       `json:"group"`
	Count  int             `json:"count"`
	Events []eventResponse `json:"events"`
	Groups []groupResponse `json:"groups"`
}

// timelineHandler godoc
// @Summary Timeline de varios pacientes
// @Description Une citas, recetas, signos vitales, laboratorio y notas de los pacientes pedidos, ordenado por fecha desc. Con más de un paciente, los que el usuario no puede ver se omiten sin error; con uno solo, responde 403.
// @Tags timeline
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patient_ids query string true "IDs separados por coma"
// @Param types query string false "Filtro de tipos, separados por coma: appointment,prescription,vitals,lab_result,note"
// @Param q query string false "Búsqueda case-insensitive en título, descripción y metadata"
// @Param from query string false "Desde (RFC3339)"
// @Param to query string false "Hasta (RFC3339)"
// @Param last query int false "Últimos N días: 7, 30 o 90"
// @Param group query string false "all (por día) | by-patient"
// @Success 200 {object} timelineResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Failure 503 {object} httpresp.ErrorResponse
// @Router /timeline [get]
func timelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		ids := splitCSV(r.URL.Query().Get("patient_ids"))
		if len(ids) == 0 {
			httpresp.BadRequest(w, "patient_ids required")
			return
		}
		serveTimeline(w, r, svc, userID, ids)
	}
}

// patientTimelineHandler godoc
// @Summary Timeline de un paciente
// @Description Igual que /timeline para un único paciente. Sin acceso responde 403; paciente inexistente 404.
// @Tags timeline
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param types query string false "Filtro de tipos, separados por coma"
// @Param q query string false "Búsqueda"
// @Param from query string false "Desde (RFC3339)"
// @Param to query string false "Hasta (RFC3339)"
// @Param last query int false "Últimos N días: 7, 30 o 90"
// @Param group query string false "all | by-patient"
// @Success 200 {object} timelineResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /patients/{patientID}/timeline [get]
func patientTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}
		serveTimeline(w, r, svc, userID, []string{chi.URLParam(r, "patientID")})
	}
}

func serveTimeline(w http.ResponseWriter, r *http.Request, svc *Service, userID string, ids []string) {
	opts, err := parseOptions(r)
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}

	tl, err := svc.GetTimeline(r.Context(), userID, ids, opts)
	if err != nil {
		// Cliente que se fue: no hay a quién responder.
		if r.Context().Err() != nil {
			return
		}
		httpresp.WriteError(w, err)
		return
	}
	httpresp.WriteJSON(w, http.StatusOK, toTimelineResponse(tl))
}

func parseOptions(r *http.Request) (Options, error) {
	q := r.URL.Query()
	var opts Options

	for _, raw := range splitCSV(q.Get("types")) {
		t, err := ParseEventType(raw)
		if err != nil {
			return Options{}, err
		}
		opts.Types = append(opts.Types, t)
	}

	opts.Query = q.Get("q")

	if s := strings.TrimSpace(q.Get("from")); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Options{}, badParam("from must be RFC3339")
		}
		opts.From = &t
	}
	if s := strings.TrimSpace(q.Get("to")); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Options{}, badParam("to must be RFC3339")
		}
		opts.To = &t
	}

	if s := strings.TrimSpace(q.Get("last")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || !isQuickRange(n) {
			return Options{}, badParam("last must be 7, 30 or 90")
		}
		opts.LastDays = n
	}

	g, err := ParseGroupMode(q.Get("group"))
	if err != nil {
		return Options{}, err
	}
	opts.Group = g
	return opts, nil
}

func isQuickRange(n int) bool {
	for _, v := range QuickRanges {
		if n == v {
			return true
		}
	}
	return false
}

func badParam(msg string) error {
	return fmt.Errorf("%w: %s", access.ErrInvalidArgument, msg)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toTimelineResponse(tl Timeline) timelineResponse {
	out := timelineResponse{
		From:   tl.Range.From,
		To:     tl.Range.To,
		Group:  tl.Group,
		Count:  len(tl.Events),
		Events: toEventResponses(tl.Events),
		Groups: make([]groupResponse, 0, len(tl.Groups)),
	}
	for _, g := range tl.Groups {
		out.Groups = append(out.Groups, groupResponse{
			PatientID: g.PatientID,
			Day:       g.Day,
			Events:    toEventResponses(g.Events),
		})
	}
	return out
}

func toEventResponses(events []Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:          e.ID,
			PatientID:   e.PatientID,
			Type:        e.Type,
			Date:        e.Date,
			Title:       e.Title,
			Description: e.Description,
			Metadata:    Metadata(e.Details),
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
