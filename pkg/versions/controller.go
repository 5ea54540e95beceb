package versions

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/visualvc/versionlog/pkg/apiresponses"
	"github.com/visualvc/versionlog/pkg/metrics"
	"github.com/visualvc/versionlog/pkg/ratelimit"
	"github.com/visualvc/versionlog/pkg/store"
)

// CreateRequest is the POST /api/versions body.
type CreateRequest struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Changes string `json:"changes"`
}

// ListResponse is the GET /api/versions body. NextNum and PrevNum are null
// when there is no adjacent page.
type ListResponse struct {
	Versions []store.VersionEntry `json:"versions"`
	HasNext  bool                 `json:"has_next"`
	HasPrev  bool                 `json:"has_prev"`
	NextNum  *int                 `json:"next_num"`
	PrevNum  *int                 `json:"prev_num"`
}

// Controller serves the version entry API. Each route runs its rate limiter
// first and the session gate second, so throttled requests never cost a
// credential or store lookup.
type Controller struct {
	log        *zap.SugaredLogger
	store      store.VersionStore
	session    gin.HandlerFunc
	readLimit  *ratelimit.IPRateLimiter
	writeLimit *ratelimit.IPRateLimiter
}

func NewController(log *zap.SugaredLogger,
	versionStore store.VersionStore,
	session gin.HandlerFunc,
	readLimit, writeLimit *ratelimit.IPRateLimiter,
) *Controller {
	return &Controller{
		log:        log,
		store:      versionStore,
		session:    session,
		readLimit:  readLimit,
		writeLimit: writeLimit,
	}
}

func (Controller) BasePath() string {
	return "versions"
}

// Handlers returns no group-level middleware; the limiter/session chains are
// wired per route because reads and writes use different quotas.
func (Controller) Handlers() []gin.HandlerFunc {
	return nil
}

func (ct *Controller) Register(rg *gin.RouterGroup) error {
	rg.GET("", ct.readLimit.Middleware(), ct.session, ct.handleList)
	rg.POST("", ct.writeLimit.Middleware(), ct.session, ct.handleCreate)
	rg.DELETE("/:id", ct.writeLimit.Middleware(), ct.session, ct.handleDelete)

	return nil
}

func (ct *Controller) handleList(c *gin.Context) {
	// Non-integer or sub-1 page values clamp to the first page.
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	search := c.Query("search")

	result, err := ct.store.ListVersions(c.Request.Context(), page, store.DefaultPageSize, search)
	if err != nil {
		apiresponses.RespondInternalError(c, "list versions", err, ct.log)
		return
	}

	apiresponses.RespondOK(c, ListResponse{
		Versions: result.Items,
		HasNext:  result.HasNext,
		HasPrev:  result.HasPrev,
		NextNum:  result.NextNum,
		PrevNum:  result.PrevNum,
	})
}

func (ct *Controller) handleCreate(c *gin.Context) {
	request := CreateRequest{}
	if err := json.NewDecoder(c.Request.Body).Decode(&request); err != nil {
		apiresponses.RespondInternalError(c, "decode version entry", err, ct.log)
		return
	}

	entry, err := ct.store.CreateVersion(c.Request.Context(), request.Version, request.Date, request.Changes)
	if err != nil {
		apiresponses.RespondInternalError(c, "create version entry", err, ct.log)
		return
	}

	metrics.VersionsCreated.Inc()
	ct.log.Infow("Version entry created", "id", entry.ID, "version", entry.Version)
	apiresponses.RespondCreated(c, entry)
}

func (ct *Controller) handleDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apiresponses.RespondInternalError(c, "parse version entry id", err, ct.log)
		return
	}

	if err := ct.store.DeleteVersion(c.Request.Context(), id); err != nil {
		apiresponses.RespondInternalError(c, "delete version entry", err, ct.log)
		return
	}

	metrics.VersionsDeleted.Inc()
	ct.log.Infow("Version entry deleted", "id", id)
	apiresponses.RespondNoContent(c)
}
