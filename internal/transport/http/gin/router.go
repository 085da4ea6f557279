package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
	redisrepo "github.com/studiodesk/studiodesk/internal/repository/redis"
	"github.com/studiodesk/studiodesk/internal/service"
	"github.com/studiodesk/studiodesk/internal/service/bookings"
	"github.com/studiodesk/studiodesk/internal/service/clients"
	"github.com/studiodesk/studiodesk/internal/service/finance"
	"github.com/studiodesk/studiodesk/internal/service/quotations"
	"github.com/studiodesk/studiodesk/internal/service/settings"
	"github.com/studiodesk/studiodesk/internal/service/studio"
	"github.com/studiodesk/studiodesk/internal/service/team"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NotificationSubscriber streams a user's notifications until the
// context is cancelled. Implemented by the Redis pub/sub repository.
type NotificationSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID, handler func(ctx context.Context, n notify.Notification)) error
}

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	subscriber NotificationSubscriber,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", AuthRequired())
	{
		api.GET("/clients", handleListClients(svcs))
		api.POST("/clients", handleCreateClient(svcs))
		api.GET("/clients/:id", handleGetClient(svcs))
		api.PATCH("/clients/:id", handleUpdateClient(svcs))

		api.GET("/team", handleListTeam(svcs))
		api.POST("/team", handleCreateTeamMember(svcs))
		api.PATCH("/team/:id", handleUpdateTeamMember(svcs))
		api.GET("/team/:id/schedule", handleMemberSchedule(svcs))

		api.GET("/bookings", handleListBookings(svcs))
		api.POST("/bookings", handleCreateBooking(svcs, idem))
		api.GET("/bookings/:id", handleGetBooking(svcs))
		api.PATCH("/bookings/:id", handleUpdateBooking(svcs))
		api.POST("/bookings/:id/status", handleTransitionBooking(svcs))

		api.GET("/finance/records", handleListRecords(svcs))
		api.POST("/finance/records", handleCreateRecord(svcs))
		api.GET("/finance/summary", handleFinanceSummary(svcs))

		api.GET("/quotations", handleListQuotations(svcs))
		api.POST("/quotations", handleCreateQuotation(svcs))
		api.GET("/quotations/:id", handleGetQuotation(svcs))
		api.PUT("/quotations/:id", handleUpdateQuotation(svcs))
		api.DELETE("/quotations/:id", handleDeleteQuotation(svcs))
		api.POST("/quotations/:id/convert", handleConvertQuotation(svcs))

		api.GET("/services", handleListServices(svcs))
		api.POST("/services", handleCreateService(svcs))

		api.GET("/profile", handleGetProfile(svcs))
		api.PUT("/profile", handleSaveProfile(svcs))

		api.GET("/settings/:name", handleGetSettings(svcs))
		api.PUT("/settings/:name", handleSaveSettings(svcs))

		api.GET("/notifications/stream", handleNotificationStream(subscriber))
	}

	return r
}

// --- Clients ---

// @Summary  List clients with booking aggregates
// @Success  200  {array}  domain.ClientSummary
// @Router   /api/v1/clients [get]
func handleListClients(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Clients.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=30", true)
	}
}

// @Summary  Add client
// @Param    req body CreateClientRequest true "payload"
// @Success  201 {object} domain.Client
// @Router   /api/v1/clients [post]
func handleCreateClient(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Clients.Create(c.Request.Context(), currentUser(c), domain.Client{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Notes: req.Notes,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Get client with booking aggregates
// @Param    id  path  string  true  "Client ID (uuid)"
// @Success  200 {object} domain.ClientSummary
// @Router   /api/v1/clients/{id} [get]
func handleGetClient(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Clients.Get(c.Request.Context(), currentUser(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=30", true)
	}
}

// @Summary  Update client
// @Param    id  path  string  true  "Client ID (uuid)"
// @Param    req body UpdateClientRequest true "payload"
// @Success  200 {object} domain.Client
// @Router   /api/v1/clients/{id} [patch]
func handleUpdateClient(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Clients.Update(c.Request.Context(), currentUser(c), id, postgresrepo.ClientPatch{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Notes: req.Notes,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Team ---

// @Summary  List team members
// @Success  200  {array}  domain.TeamMember
// @Router   /api/v1/team [get]
func handleListTeam(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Team.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=30", true)
	}
}

// @Summary  Add team member
// @Param    req body CreateTeamMemberRequest true "payload"
// @Success  201 {object} domain.TeamMember
// @Router   /api/v1/team [post]
func handleCreateTeamMember(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTeamMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Team.Create(c.Request.Context(), currentUser(c), domain.TeamMember{
			Name:       req.Name,
			Role:       req.Role,
			Email:      req.Email,
			Phone:      req.Phone,
			HourlyRate: req.HourlyRate,
			Status:     domain.MemberStatus(req.Status),
		}, req.Invite)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Update team member
// @Param    id  path  string  true  "Member ID (uuid)"
// @Param    req body UpdateTeamMemberRequest true "payload"
// @Success  200 {object} domain.TeamMember
// @Router   /api/v1/team/{id} [patch]
func handleUpdateTeamMember(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateTeamMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var status *domain.MemberStatus
		if req.Status != nil {
			s := domain.MemberStatus(*req.Status)
			status = &s
		}
		out, err := svcs.Team.Update(c.Request.Context(), currentUser(c), id, postgresrepo.TeamMemberPatch{
			Name:       req.Name,
			Role:       req.Role,
			Email:      req.Email,
			Phone:      req.Phone,
			HourlyRate: req.HourlyRate,
			Status:     status,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Member schedule
// @Param    id    path   string  true   "Member ID (uuid)"
// @Param    from  query  string  false  "YYYY-MM-DD"
// @Param    to    query  string  false  "YYYY-MM-DD"
// @Success  200  {array}  domain.Booking
// @Failure  409  {object}  ErrorResponse "member inactive"
// @Router   /api/v1/team/{id}/schedule [get]
func handleMemberSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		from := time.Now().Truncate(24 * time.Hour)
		to := from.AddDate(0, 1, 0)

		if s := c.Query("from"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				badRequest(c, "invalid from (YYYY-MM-DD)")
				return
			}
			from = t
		}
		if s := c.Query("to"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				badRequest(c, "invalid to (YYYY-MM-DD)")
				return
			}
			to = t
		}

		out, err := svcs.Team.Schedule(c.Request.Context(), currentUser(c), id, from, to)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Bookings ---

// @Summary  List bookings
// @Param    client_id       query  string  false  "filter by client"
// @Param    status          query  string  false  "pending|confirmed|completed|cancelled"
// @Param    team_member_id  query  string  false  "filter by assigned member"
// @Param    month           query  int     false  "1-12, with year"
// @Param    year            query  int     false  "calendar year"
// @Success  200  {array}  domain.Booking
// @Router   /api/v1/bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := domain.BookingFilter{
			Status:       domain.BookingStatus(c.Query("status")),
			TeamMemberID: c.Query("team_member_id"),
			Month:        parseIntDefault(c.Query("month"), 0),
			Year:         parseIntDefault(c.Query("year"), 0),
		}
		if raw := c.Query("client_id"); raw != "" {
			cid, err := uuid.Parse(raw)
			if err != nil {
				badRequest(c, "invalid client_id")
				return
			}
			f.ClientID = cid.String()
		}
		if f.Status != "" && !f.Status.Valid() {
			badRequest(c, "invalid status")
			return
		}
		out, err := svcs.Bookings.List(c.Request.Context(), currentUser(c), f)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=15", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    req body CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.Booking
// @Failure  400 {object} ValidationErrorResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/v1/bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		userID := currentUser(c)

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(userID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		var inline *bookings.InlineClient
		if req.NewClient != nil {
			inline = &bookings.InlineClient{
				Name:  req.NewClient.Name,
				Email: req.NewClient.Email,
				Phone: req.NewClient.Phone,
			}
		}

		rlKey := "ip:" + c.ClientIP()

		out, fieldErrs, err := svcs.Bookings.Create(c.Request.Context(), userID, req.draft(), inline, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, bookings.ErrValidation) {
				c.JSON(http.StatusBadRequest, ValidationErrorResponse{
					Error:  "validation failed",
					Fields: fieldErrs,
				})
				return
			}
			if errors.Is(err, bookings.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
				return
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(out)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} domain.Booking
// @Router   /api/v1/bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Bookings.Get(c.Request.Context(), currentUser(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Update booking details
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Param    req body UpdateBookingRequest true "payload"
// @Success  200 {object} domain.Booking
// @Failure  409 {object} ErrorResponse "booking finalized"
// @Router   /api/v1/bookings/{id} [patch]
func handleUpdateBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p := postgresrepo.BookingPatch{
			Name:                  req.Name,
			ServiceIDs:            req.ServiceIDs,
			StartTime:             req.StartTime,
			EndTime:               req.EndTime,
			Location:              req.Location,
			AssignedTeamMemberIDs: req.TeamMemberIDs,
			Amount:                req.Amount,
			Expenses:              req.Expenses,
			Notes:                 req.Notes,
		}
		if req.Date != nil {
			t, err := parseDate(*req.Date)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			p.Date = &t
		}
		if req.PaymentStatus != nil {
			s := domain.PaymentStatus(*req.PaymentStatus)
			p.PaymentStatus = &s
		}

		out, err := svcs.Bookings.UpdateDetails(c.Request.Context(), currentUser(c), id, p)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Transition booking status
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Param    req body TransitionBookingRequest true "payload"
// @Success  200 {object} domain.Booking
// @Failure  409 {object} ErrorResponse "invalid transition / finalized"
// @Router   /api/v1/bookings/{id}/status [post]
func handleTransitionBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req TransitionBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		next := domain.BookingStatus(req.Status)
		if !next.Valid() {
			badRequest(c, "invalid status")
			return
		}
		out, err := svcs.Bookings.Transition(c.Request.Context(), currentUser(c), id, next)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Finance ---

// @Summary  List financial records
// @Success  200  {array}  domain.FinancialRecord
// @Router   /api/v1/finance/records [get]
func handleListRecords(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Finance.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=15", true)
	}
}

// @Summary  Add financial record
// @Param    req body CreateRecordRequest true "payload"
// @Success  201 {object} domain.FinancialRecord
// @Router   /api/v1/finance/records [post]
func handleCreateRecord(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		rec := domain.FinancialRecord{
			Type:        domain.RecordType(req.Type),
			Description: req.Description,
			Amount:      req.Amount,
			Category:    req.Category,
		}
		if req.Date != "" {
			t, err := parseDate(req.Date)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			rec.Date = t
		}
		if req.BookingID != "" {
			bid, err := uuid.Parse(req.BookingID)
			if err != nil {
				badRequest(c, "invalid booking_id")
				return
			}
			rec.BookingID = &bid
		}
		if req.TeamMemberID != "" {
			mid, err := uuid.Parse(req.TeamMemberID)
			if err != nil {
				badRequest(c, "invalid team_member_id")
				return
			}
			rec.TeamMemberID = &mid
		}

		out, err := svcs.Finance.Create(c.Request.Context(), currentUser(c), rec)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Finance summary
// @Param    month  query  int  false  "1-12, with year"
// @Param    year   query  int  false  "calendar year"
// @Success  200 {object} domain.FinanceSummary
// @Router   /api/v1/finance/summary [get]
func handleFinanceSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := parseIntDefault(c.Query("month"), 0)
		year := parseIntDefault(c.Query("year"), 0)
		out, err := svcs.Finance.Summary(c.Request.Context(), currentUser(c), month, year)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=30", true)
	}
}

// --- Quotations ---

// @Summary  List quotations
// @Success  200  {array}  domain.Quotation
// @Router   /api/v1/quotations [get]
func handleListQuotations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Quotations.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Create quotation
// @Param    req body QuotationRequest true "payload"
// @Success  201 {object} domain.Quotation
// @Router   /api/v1/quotations [post]
func handleCreateQuotation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := bindQuotation(c)
		if !ok {
			return
		}
		out, err := svcs.Quotations.Create(c.Request.Context(), currentUser(c), draft)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Get quotation
// @Param    id  path  string  true  "Quotation ID (uuid)"
// @Success  200 {object} domain.Quotation
// @Router   /api/v1/quotations/{id} [get]
func handleGetQuotation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Quotations.Get(c.Request.Context(), currentUser(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Update quotation
// @Param    id  path  string  true  "Quotation ID (uuid)"
// @Param    req body QuotationRequest true "payload"
// @Success  200 {object} domain.Quotation
// @Failure  409 {object} ErrorResponse "already converted"
// @Router   /api/v1/quotations/{id} [put]
func handleUpdateQuotation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req QuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		draft, ok := quotationDraft(c, req)
		if !ok {
			return
		}
		out, err := svcs.Quotations.Update(
			c.Request.Context(),
			currentUser(c),
			id,
			draft,
			domain.QuotationStatus(req.Status),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Delete quotation
// @Param    id  path  string  true  "Quotation ID (uuid)"
// @Success  204
// @Router   /api/v1/quotations/{id} [delete]
func handleDeleteQuotation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Quotations.Delete(c.Request.Context(), currentUser(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Convert quotation
// @Param    id  path  string  true  "Quotation ID (uuid)"
// @Success  200 {object} domain.Quotation
// @Failure  409 {object} ErrorResponse "already converted"
// @Router   /api/v1/quotations/{id}/convert [post]
func handleConvertQuotation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Quotations.Convert(c.Request.Context(), currentUser(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Services & profile ---

// @Summary  List service offerings
// @Success  200  {array}  domain.ServiceOffering
// @Router   /api/v1/services [get]
func handleListServices(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Studio.ListServices(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, out, "private, max-age=60", true)
	}
}

// @Summary  Add service offering
// @Param    req body CreateServiceRequest true "payload"
// @Success  201 {object} domain.ServiceOffering
// @Router   /api/v1/services [post]
func handleCreateService(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Studio.CreateService(c.Request.Context(), currentUser(c), domain.ServiceOffering{
			Name:        req.Name,
			Description: req.Description,
			BasePrice:   req.BasePrice,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary  Get studio profile
// @Success  200 {object} domain.Profile
// @Router   /api/v1/profile [get]
func handleGetProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Studio.GetProfile(c.Request.Context(), currentUser(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Save studio profile
// @Param    req body ProfileRequest true "payload"
// @Success  200 {object} domain.Profile
// @Router   /api/v1/profile [put]
func handleSaveProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		out, err := svcs.Studio.SaveProfile(c.Request.Context(), currentUser(c), domain.Profile{
			StudioName: req.StudioName,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Settings ---

// @Summary  Get settings object
// @Param    name  path  string  true  "api_keys|general|appearance|notifications"
// @Success  200 {object} object
// @Router   /api/v1/settings/{name} [get]
func handleGetSettings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Settings.Get(c.Request.Context(), currentUser(c), c.Param("name"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", out)
	}
}

// @Summary  Save settings object
// @Param    name  path  string  true  "api_keys|general|appearance|notifications"
// @Success  204
// @Router   /api/v1/settings/{name} [put]
func handleSaveSettings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Settings.Save(c.Request.Context(), currentUser(c), c.Param("name"), body); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Notifications ---

// @Summary  Stream notifications (server-sent events)
// @Produce  text/event-stream
// @Success  200
// @Router   /api/v1/notifications/stream [get]
func handleNotificationStream(subscriber NotificationSubscriber) gin.HandlerFunc {
	return func(c *gin.Context) {
		if subscriber == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "notifications unavailable"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeaderNow()
		c.Writer.Flush()

		err := subscriber.Subscribe(c.Request.Context(), currentUser(c), func(_ context.Context, n notify.Notification) {
			b, mErr := json.Marshal(n)
			if mErr != nil {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", b)
			c.Writer.Flush()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			// The stream is already committed; nothing useful to send.
			return
		}
	}
}

// --- Helpers ---

func bindQuotation(c *gin.Context) (quotations.Draft, bool) {
	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return quotations.Draft{}, false
	}
	return quotationDraft(c, req)
}

func quotationDraft(c *gin.Context, req QuotationRequest) (quotations.Draft, bool) {
	d := quotations.Draft{
		BillTo: domain.BillTo{
			Name:      req.BillTo.Name,
			Address:   req.BillTo.Address,
			RTNNumber: req.BillTo.RTNNumber,
		},
		Deliverables:       req.Deliverables,
		PaymentTerms:       req.PaymentTerms,
		BankDetails:        req.BankDetails,
		TermsAndConditions: req.TermsAndConditions,
	}

	for _, it := range req.Items {
		d.Items = append(d.Items, domain.QuotationItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	if req.IssueDate != "" {
		t, err := parseDate(req.IssueDate)
		if err != nil {
			badRequest(c, "invalid issue_date (YYYY-MM-DD)")
			return quotations.Draft{}, false
		}
		d.IssueDate = t
	}
	if req.ShootingDate != "" {
		t, err := parseDate(req.ShootingDate)
		if err != nil {
			badRequest(c, "invalid shooting_date (YYYY-MM-DD)")
			return quotations.Draft{}, false
		}
		d.ShootingDate = &t
	}

	return d, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth short-circuits from any service
	case errors.Is(err, clients.ErrUnauthenticated),
		errors.Is(err, team.ErrUnauthenticated),
		errors.Is(err, bookings.ErrUnauthenticated),
		errors.Is(err, finance.ErrUnauthenticated),
		errors.Is(err, quotations.ErrUnauthenticated),
		errors.Is(err, settings.ErrUnauthenticated),
		errors.Is(err, studio.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	// clients service
	case errors.Is(err, clients.ErrClientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	// team service
	case errors.Is(err, team.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "team member not found"})
		return
	case errors.Is(err, team.ErrMemberInactive):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "team member is inactive"})
		return
	case errors.Is(err, team.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid member status"})
		return
	// bookings service
	case errors.Is(err, bookings.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	case errors.Is(err, bookings.ErrClientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	case errors.Is(err, bookings.ErrBookingFinalized):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking is completed or cancelled"})
		return
	case errors.Is(err, bookings.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid status transition"})
		return
	case errors.Is(err, bookings.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start time must be before end time"})
		return
	// finance service
	case errors.Is(err, finance.ErrInvalidType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "record type must be income or expense"})
		return
	// quotations service
	case errors.Is(err, quotations.ErrQuotationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "quotation not found"})
		return
	case errors.Is(err, quotations.ErrAlreadyConverted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "quotation already converted"})
		return
	case errors.Is(err, quotations.ErrNoItems):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quotation needs at least one item"})
		return
	case errors.Is(err, quotations.ErrMissingBillToName):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bill-to name is required"})
		return
	// settings service
	case errors.Is(err, settings.ErrUnknownSetting):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown settings name"})
		return
	// studio service
	case errors.Is(err, studio.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		return
	case errors.Is(err, studio.ErrServiceConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "service with this name already exists"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
