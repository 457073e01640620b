package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/models"
	"plantonize/internal/services"
)

// unknownUser names a log author whose account no longer exists.
const unknownUser = "unknown"

// EvolutionHandler handles evolution records and their change history.
type EvolutionHandler struct {
	evolutionService services.EvolutionServicer
}

// NewEvolutionHandler creates a new EvolutionHandler.
func NewEvolutionHandler(evolutionService services.EvolutionServicer) *EvolutionHandler {
	return &EvolutionHandler{evolutionService: evolutionService}
}

// OptionalID is a nullable id field that tells an absent key apart from an
// explicit null.
type OptionalID struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// EvolutionRequest is the payload for creating and updating evolutions.
// criado_por and visualizado are not accepted from clients.
type EvolutionRequest struct {
	Title      *string    `json:"titulo" binding:"omitempty,max=200"`
	Content    *string    `json:"conteudo"`
	Category   *string    `json:"categoria" binding:"omitempty,max=100"`
	AssignedTo OptionalID `json:"atribuido_a" swaggertype:"string" format:"uuid"`
}

func (r EvolutionRequest) missing() map[string]string {
	details := map[string]string{}
	if r.Title == nil {
		details["titulo"] = "This field is required."
	}
	if r.Content == nil {
		details["conteudo"] = "This field is required."
	}
	if r.Category == nil {
		details["categoria"] = "This field is required."
	}
	return details
}

func (r EvolutionRequest) toInput() (services.EvolutionInput, error) {
	if r.AssignedTo.Value != nil && !models.IsValidID(*r.AssignedTo.Value) {
		return services.EvolutionInput{}, apperrors.WithDetails(apperrors.ErrInvalidAssignee, map[string]string{
			"atribuido_a": "Must be a valid user id.",
		})
	}
	return services.EvolutionInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		AssignedTo: services.Assignment{
			Set:    r.AssignedTo.Set,
			UserID: r.AssignedTo.Value,
		},
	}, nil
}

// LogResponse is one entry of an evolution's change history.
type LogResponse struct {
	ID         string         `json:"id"`
	Kind       models.LogKind `json:"tipo" swaggertype:"string" enums:"criação,edição"`
	User       string         `json:"usuario"`
	UserID     *string        `json:"usuario_id"`
	OccurredAt time.Time      `json:"data"`
}

func newLogResponse(l models.EvolutionLog) LogResponse {
	resp := LogResponse{
		ID:         l.ID,
		Kind:       l.Kind,
		User:       unknownUser,
		OccurredAt: l.OccurredAt,
	}
	if l.User != nil {
		resp.User = l.User.Username
		resp.UserID = &l.User.ID
	}
	return resp
}

// EvolutionResponse represents an evolution in the response.
type EvolutionResponse struct {
	ID         string        `json:"id"`
	Title      string        `json:"titulo"`
	Content    string        `json:"conteudo"`
	Category   string        `json:"categoria"`
	Viewed     bool          `json:"visualizado"`
	CreatedBy  *string       `json:"criado_por"`
	AssignedTo *string       `json:"atribuido_a"`
	CreatedAt  time.Time     `json:"data_criacao"`
	UpdatedAt  time.Time     `json:"data_edicao"`
	Logs       []LogResponse `json:"logs"`
}

func newEvolutionResponse(e models.Evolution) EvolutionResponse {
	logs := make([]LogResponse, len(e.Logs))
	for i, l := range e.Logs {
		logs[i] = newLogResponse(l)
	}
	return EvolutionResponse{
		ID:         e.ID,
		Title:      e.Title,
		Content:    e.Content,
		Category:   e.Category,
		Viewed:     e.Viewed,
		CreatedBy:  e.CreatedByID,
		AssignedTo: e.AssignedToID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Logs:       logs,
	}
}

// ListEvolutions lists the evolutions visible to the caller
// @Summary     List evolutions
// @Description Collaborators see the evolutions assigned to them. Administrators see all, optionally narrowed with colaborador. Without page/page_size the response is a bare array.
// @Tags        evolutions
// @Produce     json
// @Security    BearerAuth
// @Param       colaborador query string false "Assignee user ID (administrators only)" format(uuid)
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Items per page (max 100)"
// @Success     200 {array}  EvolutionResponse "Evolutions, oldest first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes [get]
func (h *EvolutionHandler) ListEvolutions(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.EvolutionFilter
	if assignee := c.Query("colaborador"); assignee != "" {
		if !models.IsValidID(assignee) {
			respondWithError(c, apperrors.WithDetails(apperrors.ErrInvalidInput, map[string]string{
				"colaborador": "Must be a valid user id.",
			}))
			return
		}
		filter.AssigneeID = &assignee
	}

	result, err := h.evolutionService.ListEvolutions(requester, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, page, result, newEvolutionResponse)
}

// GetEvolution returns one evolution
// @Summary     Get an evolution
// @Description Return the evolution with its change history. The assigned collaborator's first read marks it as viewed.
// @Tags        evolutions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Evolution ID"
// @Success     200 {object} EvolutionResponse "Evolution"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Evolution not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes/{id} [get]
func (h *EvolutionHandler) GetEvolution(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrEvolutionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	evolution, err := h.evolutionService.GetEvolution(requester, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEvolutionResponse(*evolution))
}

// CreateEvolution creates an evolution authored by the caller
// @Summary     Create an evolution
// @Description Create an evolution. The caller becomes its author and a creation entry is logged.
// @Tags        evolutions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EvolutionRequest true "Evolution"
// @Success     201 {object} EvolutionResponse "Evolution created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown assignee"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes [post]
func (h *EvolutionHandler) CreateEvolution(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EvolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	evolution, err := h.evolutionService.CreateEvolution(requester, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newEvolutionResponse(*evolution))
}

// ReplaceEvolution updates every editable field of an evolution
// @Summary     Replace an evolution
// @Description Update titulo, conteudo and categoria (all required) and optionally atribuido_a. An edit entry is logged.
// @Tags        evolutions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Evolution ID"
// @Param       request body EvolutionRequest true "Evolution"
// @Success     200 {object} EvolutionResponse "Evolution updated"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown assignee"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Evolution not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes/{id} [put]
func (h *EvolutionHandler) ReplaceEvolution(c *gin.Context) {
	h.update(c, true)
}

// PatchEvolution updates some fields of an evolution
// @Summary     Partially update an evolution
// @Description Update the supplied fields only. atribuido_a may be null to unassign. An edit entry is logged.
// @Tags        evolutions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Evolution ID"
// @Param       request body EvolutionRequest true "Fields to change"
// @Success     200 {object} EvolutionResponse "Evolution updated"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown assignee"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Evolution not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes/{id} [patch]
func (h *EvolutionHandler) PatchEvolution(c *gin.Context) {
	h.update(c, false)
}

func (h *EvolutionHandler) update(c *gin.Context, full bool) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrEvolutionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EvolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if full {
		if missing := req.missing(); len(missing) > 0 {
			respondWithError(c, apperrors.WithDetails(apperrors.ErrInvalidInput, missing))
			return
		}
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	evolution, err := h.evolutionService.UpdateEvolution(requester, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEvolutionResponse(*evolution))
}

// DeleteEvolution removes an evolution
// @Summary     Delete an evolution
// @Description Delete the evolution and its change history.
// @Tags        evolutions
// @Security    BearerAuth
// @Param       id path string true "Evolution ID"
// @Success     204 "Evolution deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Evolution not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes/{id} [delete]
func (h *EvolutionHandler) DeleteEvolution(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrEvolutionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.evolutionService.DeleteEvolution(requester, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEvolutionLogs returns an evolution's change history
// @Summary     List change history
// @Description Return the evolution's log entries, oldest first. Does not mark the evolution as viewed.
// @Tags        evolutions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Evolution ID"
// @Success     200 {array}  LogResponse "Log entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Evolution not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /evolucoes/{id}/logs [get]
func (h *EvolutionHandler) ListEvolutionLogs(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrEvolutionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.evolutionService.ListEvolutionLogs(requester, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]LogResponse, len(entries))
	for i, l := range entries {
		resp[i] = newLogResponse(l)
	}
	c.JSON(http.StatusOK, resp)
}
